package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"github.com/pattarawat/identity-api/internal/middleware"
	"github.com/pattarawat/identity-api/internal/usecase"
	"github.com/pattarawat/identity-api/shared/validator"
)

// AuthHandler exposes the authentication flows over HTTP.
type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	resetUsecase usecase.PasswordResetUsecase
	validator    *validator.Validator
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	resetUsecase usecase.PasswordResetUsecase,
	v *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		resetUsecase: resetUsecase,
		validator:    v,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			respondJSON(w, http.StatusConflict, ErrorResponse{Message: "user with this email already exists"})
			return
		}

		h.internalError(w, r, err, "signup failed")
		return
	}

	respondJSON(w, http.StatusCreated, TokenResponse{
		Message: "user registered successfully",
		Token:   token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Unknown email and wrong password share one response shape.
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "invalid email or password"})
			return
		}

		h.internalError(w, r, err, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		Message: "login successful",
		Token:   token,
	})
}

// Me returns the principal the access gate attached to the request.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
		return
	}

	respondJSON(w, http.StatusOK, ProfileResponse{User: principal})
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req RequestPasswordResetRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.resetUsecase.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		h.internalError(w, r, err, "password reset request failed")
		return
	}

	respondJSON(w, http.StatusOK, RequestPasswordResetResponse{
		Message:    "if that email is registered, a reset token has been generated",
		ResetToken: token,
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.resetUsecase.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidResetToken) {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid or expired reset token"})
			return
		}

		h.internalError(w, r, err, "password reset failed")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "password has been reset successfully"})
}

// ListUsers is the admin-only sample route.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	users, err := h.authUsecase.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.internalError(w, r, err, "listing users failed")
		return
	}

	respondJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// decode parses and validates the request body, writing the error response
// itself when the payload is unusable.
func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return false
	}

	if fields := h.validator.Validate(payload); fields != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: "input validation error",
			Errors:  fields,
		})
		return false
	}

	return true
}

// internalError logs the cause and responds with a generic message; raw error
// text never reaches the caller.
func (h *AuthHandler) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	hlog.FromRequest(r).Error().Err(err).Msg(msg)
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "an internal server error occurred"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func queryInt(r *http.Request, key string) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0
	}

	return value
}
