package clients

import (
	"net/http"

	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
)

// Options configures the resource clients
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     credstore.Store
	LoginPath  string
	LogoutPath string
}

// Clients bundles one client per backend resource
type Clients struct {
	Base            *BaseClient
	Auth            *AuthClient
	Units           *UnitClient
	Lessons         *LessonClient
	AcademicYears   *AcademicYearClient
	Users           *UserClient
	Payments        *PaymentClient
	ActivationCodes *ActivationCodeClient
	Uploads         *UploadClient
	Analytics       *AnalyticsClient
}

// New builds every resource client on one shared BaseClient
func New(opts Options) *Clients {
	base := NewBaseClient(opts.BaseURL, opts.HTTPClient, opts.Tokens)
	return &Clients{
		Base:            base,
		Auth:            NewAuthClient(base, opts.LoginPath, opts.LogoutPath),
		Units:           NewUnitClient(base),
		Lessons:         NewLessonClient(base),
		AcademicYears:   NewAcademicYearClient(base),
		Users:           NewUserClient(base),
		Payments:        NewPaymentClient(base),
		ActivationCodes: NewActivationCodeClient(base),
		Uploads:         NewUploadClient(base),
		Analytics:       NewAnalyticsClient(base),
	}
}
