package dto

import "github.com/amrelfalogy/smarted/internal/app/models/dto/enums"

// LoginRequest is the body of the login call
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is an admin-side partial update of a user account
type UpdateUserRequest struct {
	FirstName  *string     `json:"firstName,omitempty"`
	LastName   *string     `json:"lastName,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Role       *enums.Role `json:"role,omitempty" validate:"omitempty,oneof=student admin teacher support"`
	IsActive   *bool       `json:"isActive,omitempty"`
	IsVerified *bool       `json:"isVerified,omitempty"`
}

// UpdateProfileRequest is the signed-in user's own partial profile update
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty" validate:"omitempty,url"`
}
