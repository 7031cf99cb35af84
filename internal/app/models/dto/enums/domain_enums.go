package enums

// Role is the backend role of a user account
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleSupport Role = "support"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleTeacher, RoleSupport:
		return true
	}
	return false
}

// Label returns the display label for r
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleAdmin:
		return "Administrator"
	case RoleTeacher:
		return "Teacher"
	case RoleSupport:
		return "Support"
	}
	return "Unknown"
}

// PaymentStatus is set by the backend; pending moves to approved or rejected once.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Label returns the display label for s
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending review"
	case PaymentApproved:
		return "Approved"
	case PaymentRejected:
		return "Rejected"
	}
	return "Unknown"
}

// IsFinal reports whether no further transition can happen
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentApproved || s == PaymentRejected
}

// LessonType describes the primary content of a lesson
type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonDocument LessonType = "document"
	LessonQuiz     LessonType = "quiz"
)

// UploadKind selects the upload endpoint and multipart field name
type UploadKind string

const (
	UploadImage    UploadKind = "image"
	UploadVideo    UploadKind = "video"
	UploadDocument UploadKind = "document"
	UploadReceipt  UploadKind = "receipt"
)

// FieldName is the multipart field the backend expects for k. Kinds without
// a dedicated field use "file".
func (k UploadKind) FieldName() string {
	switch k {
	case UploadImage:
		return "image"
	case UploadVideo:
		return "video"
	case UploadDocument:
		return "document"
	}
	return "file"
}

// Valid reports whether k maps to a known upload endpoint
func (k UploadKind) Valid() bool {
	switch k {
	case UploadImage, UploadVideo, UploadDocument, UploadReceipt:
		return true
	}
	return false
}
