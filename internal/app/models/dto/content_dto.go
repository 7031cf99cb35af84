package dto

import "github.com/amrelfalogy/smarted/internal/app/models/dto/enums"

// Ptr returns a pointer to v, for building partial update payloads.
func Ptr[T any](v T) *T {
	return &v
}

// CreateUnitRequest carries only the client-settable unit fields
type CreateUnitRequest struct {
	SubjectID   string `json:"subjectId" validate:"required"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order" validate:"gte=0"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// UpdateUnitRequest is a partial update; nil fields are left out of the body.
type UpdateUnitRequest struct {
	SubjectID   *string `json:"subjectId,omitempty"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateLessonRequest carries only the client-settable lesson fields
type CreateLessonRequest struct {
	LectureID   string           `json:"lectureId" validate:"required"`
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description,omitempty"`
	Type        enums.LessonType `json:"type" validate:"required,oneof=video document quiz"`
	VideoURL    string           `json:"videoUrl,omitempty" validate:"omitempty,url"`
	DocumentURL string           `json:"documentUrl,omitempty" validate:"omitempty,url"`
	Duration    int              `json:"duration,omitempty" validate:"gte=0"`
	Order       int              `json:"order" validate:"gte=0"`
	IsFree      bool             `json:"isFree"`
	Price       float64          `json:"price,omitempty" validate:"gte=0"`
}

// UpdateLessonRequest is a partial update; nil fields are left out of the body.
type UpdateLessonRequest struct {
	LectureID   *string           `json:"lectureId,omitempty"`
	Title       *string           `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string           `json:"description,omitempty"`
	Type        *enums.LessonType `json:"type,omitempty" validate:"omitempty,oneof=video document quiz"`
	VideoURL    *string           `json:"videoUrl,omitempty" validate:"omitempty,url"`
	DocumentURL *string           `json:"documentUrl,omitempty" validate:"omitempty,url"`
	Duration    *int              `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Order       *int              `json:"order,omitempty" validate:"omitempty,gte=0"`
	IsFree      *bool             `json:"isFree,omitempty"`
	Price       *float64          `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// CreateActivationCodeRequest asks the backend to mint a code for a subject or a lesson
type CreateActivationCodeRequest struct {
	Code      string  `json:"code,omitempty" validate:"omitempty,alphanum,min=6,max=32"`
	SubjectID *string `json:"subjectId,omitempty" validate:"required_without=LessonID,excluded_with=LessonID"`
	LessonID  *string `json:"lessonId,omitempty" validate:"required_without=SubjectID"`
	MaxUses   int     `json:"maxUses" validate:"gte=1"`
	ExpiresAt string  `json:"expiresAt,omitempty"`
}
