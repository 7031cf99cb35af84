package dto

import "github.com/amrelfalogy/smarted/internal/app/models/dto/enums"

// UnitFilters filters GET /api/content/units
type UnitFilters struct {
	ListParams
	SubjectID string
	IsActive  *bool
}

// LessonFilters filters GET /api/content/lessons
type LessonFilters struct {
	ListParams
	LectureID string
	Type      enums.LessonType
	IsFree    *bool
}

// UserFilters filters GET /api/users
type UserFilters struct {
	ListParams
	Role       enums.Role
	IsActive   *bool
	IsVerified *bool
}

// PaymentFilters filters GET /api/payments
type PaymentFilters struct {
	ListParams
	Status    enums.PaymentStatus
	StudentID string
	SubjectID string
	LessonID  string
	DateFrom  string
	DateTo    string
}

// AcademicYearFilters filters GET /api/academic/academic-years
type AcademicYearFilters struct {
	ListParams
	IsActive *bool
}

// ActivationCodeFilters filters GET /api/activation-codes
type ActivationCodeFilters struct {
	ListParams
	SubjectID string
	LessonID  string
	IsActive  *bool
}
