package models

import (
	"time"

	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
)

// PaymentTarget names what a payment unlocks
type PaymentTarget string

const (
	TargetNone    PaymentTarget = ""
	TargetSubject PaymentTarget = "subject"
	TargetLesson  PaymentTarget = "lesson"
)

// Payment belongs to one student and references at most one of subject or lesson.
type Payment struct {
	ID         string              `json:"id"`
	StudentID  string              `json:"studentId"`
	Student    *User               `json:"student,omitempty"`
	SubjectID  *string             `json:"subjectId,omitempty"`
	LessonID   *string             `json:"lessonId,omitempty"`
	Amount     float64             `json:"amount"`
	Currency   string              `json:"currency,omitempty"`
	Method     string              `json:"method"`
	Status     enums.PaymentStatus `json:"status"`
	ReceiptURL string              `json:"receiptUrl,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	ReviewedAt *time.Time          `json:"reviewedAt,omitempty"`
}

// Target reports which resource the payment unlocks and its id.
func (p Payment) Target() (PaymentTarget, string) {
	switch {
	case p.SubjectID != nil && *p.SubjectID != "":
		return TargetSubject, *p.SubjectID
	case p.LessonID != nil && *p.LessonID != "":
		return TargetLesson, *p.LessonID
	}
	return TargetNone, ""
}

// PaymentStats is the payload of GET /api/payments/stats
type PaymentStats struct {
	TotalPayments int     `json:"totalPayments"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
