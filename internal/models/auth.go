package models

import "time"

// LoginRequest holds credentials for authenticating a teacher or student.
type LoginRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	UserType UserType `json:"user_type" validate:"required,oneof=teacher student"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	UserType  UserType  `json:"user_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CurrentUser is the identity resolved from a bearer token.
type CurrentUser struct {
	ID       string   `json:"id"`
	UserType UserType `json:"user_type"`
}
