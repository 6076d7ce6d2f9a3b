package models

import "github.com/golang-jwt/jwt/v5"

const (
	TokenPurposeSession = "session"
	TokenPurposeReset   = "reset"
)

type Claims struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required"`
	PhotoURL *string `json:"photoURL" validate:"omitempty,url"`
}

// Session is returned by sign-up and sign-in.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
