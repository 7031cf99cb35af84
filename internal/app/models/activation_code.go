package models

import (
	"time"

	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
)

// ActivationCode unlocks a subject or a lesson for up to MaxUses redemptions
type ActivationCode struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	SubjectID   *string    `json:"subjectId,omitempty"`
	LessonID    *string    `json:"lessonId,omitempty"`
	MaxUses     int        `json:"maxUses"`
	CurrentUses int        `json:"currentUses"`
	IsActive    bool       `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UsagePercentage is the rounded share of MaxUses already consumed; 0 when MaxUses is 0.
func (c ActivationCode) UsagePercentage() int {
	return helpers.Percentage(int64(c.CurrentUses), int64(c.MaxUses))
}

// RemainingUses never goes below zero
func (c ActivationCode) RemainingUses() int {
	if c.CurrentUses >= c.MaxUses {
		return 0
	}
	return c.MaxUses - c.CurrentUses
}

// IsExhausted reports whether no uses remain
func (c ActivationCode) IsExhausted() bool {
	return c.MaxUses > 0 && c.CurrentUses >= c.MaxUses
}

// IsExpired reports whether the code expired before now
func (c ActivationCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
