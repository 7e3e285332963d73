package handler

import "github.com/pattarawat/identity-api/internal/model"

type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RequestPasswordResetResponse struct {
	Message string `json:"message"`
	// ResetToken is handed straight back to the caller; with out-of-band
	// delivery out of scope this is the only way the flow can complete.
	ResetToken string `json:"reset_token,omitempty"`
}

type ProfileResponse struct {
	User model.Profile `json:"user"`
}

type UsersResponse struct {
	Users []model.Profile `json:"users"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
