package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "salestrack/middlewares"
	"salestrack/models"
	"salestrack/periods"
	service "salestrack/services"
	"salestrack/utils"

	"go.uber.org/zap"
)

type CommitmentHandler struct {
	service service.CommitmentService
	logger  *zap.Logger
}

func NewCommitmentHandler(service service.CommitmentService, logger *zap.Logger) *CommitmentHandler {
	return &CommitmentHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CommitmentHandler) SubmitDaily(w http.ResponseWriter, r *http.Request) {
	var req models.CommitmentRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	commitment, err := h.service.SubmitDaily(ctx, middleware.GetUserIDFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Commitment submitted successfully", commitment, http.StatusCreated)
}

func (h *CommitmentHandler) ListDaily(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	commitments, err := h.service.ListDaily(ctx, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Commitments retrieved successfully", commitments, http.StatusOK)
}

// GetToday answers data: null when nothing was committed yet.
func (h *CommitmentHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	commitment, err := h.service.GetToday(ctx, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Commitment retrieved successfully", commitment, http.StatusOK)
}

func (h *CommitmentHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !validDayKey(date) {
		utils.HandleMessageResponse(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.GetDay(ctx, middleware.GetUserIDFromContext(r.Context()), date)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Day retrieved successfully", record, http.StatusOK)
}

func validDayKey(key string) bool {
	_, err := periods.ParseDayKey(key, time.UTC)
	return err == nil
}
