package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadKindFieldName(t *testing.T) {
	cases := map[UploadKind]string{
		UploadImage:    "image",
		UploadVideo:    "video",
		UploadDocument: "document",
		UploadReceipt:  "file",
		"avatar":       "file",
	}
	for kind, field := range cases {
		assert.Equal(t, field, kind.FieldName(), "kind %s", kind)
	}
	assert.True(t, UploadReceipt.Valid())
	assert.False(t, UploadKind("avatar").Valid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Pending review", PaymentPending.Label())
	assert.Equal(t, "Unknown", PaymentStatus("refunded").Label())
	assert.False(t, PaymentPending.IsFinal())
	assert.True(t, PaymentRejected.IsFinal())
	assert.Equal(t, "Administrator", RoleAdmin.Label())
	assert.False(t, Role("guest").Valid())
}
