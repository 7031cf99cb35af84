package models

import (
	"strings"
	"time"

	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
)

// User is a platform account as returned by /api/users
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        string     `json:"phone,omitempty"`
	Role         enums.Role `json:"role"`
	IsActive     bool       `json:"isActive"`
	IsVerified   bool       `json:"isVerified"`
	ProfileImage *string    `json:"profileImage,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FullName joins first and last name, falling back to the email
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// UserStats is the payload of GET /api/users/stats/overview
type UserStats struct {
	TotalUsers    int                `json:"totalUsers"`
	ActiveUsers   int                `json:"activeUsers"`
	VerifiedUsers int                `json:"verifiedUsers"`
	NewThisMonth  int                `json:"newThisMonth"`
	UsersByRole   map[enums.Role]int `json:"usersByRole"`
}
