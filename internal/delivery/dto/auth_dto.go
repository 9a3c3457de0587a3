package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// LoginRequest is checked by the login usecase itself so that blank fields
// fail the same way as wrong credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Domain   string `json:"domain"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Response DTOs

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	UserName    string    `json:"user_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionResponse carries a freshly issued session
type SessionResponse struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	ExpiresIn int64     `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginResponse struct {
	User    UserResponse    `json:"user"`
	Role    string          `json:"role"`
	Landing string          `json:"landing"`
	Session SessionResponse `json:"session"`
}

type DashboardLandingResponse struct {
	Role string       `json:"role"`
	User UserResponse `json:"user"`
}
