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

type ReportHandler struct {
	service service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(service service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ReportHandler) SubmitDaily(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	submission, err := h.service.SubmitDaily(ctx, middleware.GetUserIDFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Report submitted successfully", submission, http.StatusCreated)
}

func (h *ReportHandler) ListDaily(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := h.service.ListDaily(ctx, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Reports retrieved successfully", reports, http.StatusOK)
}

func (h *ReportHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !validDayKey(date) {
		utils.HandleMessageResponse(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.GetDaily(ctx, middleware.GetUserIDFromContext(r.Context()), date)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Report retrieved successfully", report, http.StatusOK)
}

func (h *ReportHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !validDayKey(date) {
		utils.HandleMessageResponse(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	meetings, err := h.service.ListMeetings(ctx, middleware.GetUserIDFromContext(r.Context()), date)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Meetings retrieved successfully", meetings, http.StatusOK)
}
