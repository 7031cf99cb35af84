package models

import "time"

// DashboardStats is the payload of GET /analytics/dashboard
type DashboardStats struct {
	TotalStudents   int              `json:"totalStudents"`
	TotalTeachers   int              `json:"totalTeachers"`
	TotalSubjects   int              `json:"totalSubjects"`
	TotalLessons    int              `json:"totalLessons"`
	PendingPayments int              `json:"pendingPayments"`
	TotalRevenue    float64          `json:"totalRevenue"`
	RecentActivity  []ActivityRecord `json:"recentActivity,omitempty"`
}

// ActivityRecord is one line of the dashboard activity feed
type ActivityRecord struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserID      string    `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserAnalytics is the payload of GET /analytics/users
type UserAnalytics struct {
	Registrations []PeriodCount  `json:"registrations"`
	ByRole        map[string]int `json:"byRole"`
	ActiveToday   int            `json:"activeToday"`
}

// PeriodCount is a count for one reporting period
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}
