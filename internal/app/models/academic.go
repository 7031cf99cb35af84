package models

import "time"

// AcademicYear groups student years. The backend guarantees at most one
// year has IsCurrent set.
type AcademicYear struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
	IsCurrent    bool          `json:"isCurrent"`
	IsActive     bool          `json:"isActive"`
	StudentYears []StudentYear `json:"studentYears,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Contains reports whether t falls inside the year
func (y AcademicYear) Contains(t time.Time) bool {
	return !t.Before(y.StartDate) && !t.After(y.EndDate)
}

// StudentYear is a grade level inside an academic year
type StudentYear struct {
	ID             string `json:"id"`
	AcademicYearID string `json:"academicYearId"`
	Name           string `json:"name"`
	Order          int    `json:"order"`
	IsActive       bool   `json:"isActive"`
}

// CurrentYear returns the year flagged current, if any
func CurrentYear(years []AcademicYear) (AcademicYear, bool) {
	for _, y := range years {
		if y.IsCurrent {
			return y, true
		}
	}
	return AcademicYear{}, false
}
