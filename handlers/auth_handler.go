package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "salestrack/middlewares"
	"salestrack/models"
	service "salestrack/services"
	"salestrack/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(service service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// SignUp always creates an employee; other roles are granted by an admin.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, err := h.service.SignUp(ctx, &req, models.RoleEmployee)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Account created successfully", session, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, err := h.service.SignIn(ctx, &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Signed in successfully", session, http.StatusOK)
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.RequestPasswordReset(ctx, req.Email); err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleMessageResponse(w, "If the email is registered, a reset link has been sent", http.StatusOK)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetConfirmRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.ResetPassword(ctx, req.Token, req.Password); err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleMessageResponse(w, "Password updated successfully", http.StatusOK)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.CurrentUser(ctx, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "User retrieved successfully", user, http.StatusOK)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.UpdateProfile(ctx, middleware.GetUserIDFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Profile updated successfully", user, http.StatusOK)
}
