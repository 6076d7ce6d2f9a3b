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

type ProspectHandler struct {
	service service.ProspectService
	logger  *zap.Logger
}

func NewProspectHandler(service service.ProspectService, logger *zap.Logger) *ProspectHandler {
	return &ProspectHandler{
		service: service,
		logger:  logger,
	}
}

// List accepts ?status=, ?range= and ?search= filters.
func (h *ProspectHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.ProspectFilter{
		Status: query.Get("status"),
		Range:  query.Get("range"),
		Search: query.Get("search"),
	}
	switch filter.Range {
	case "", service.RangeAll, service.RangeToday, service.RangeWeek, service.RangeMonth:
	default:
		utils.HandleMessageResponse(w, "Invalid range, expected all, today, week or month", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prospects, err := h.service.List(ctx, middleware.GetUserIDFromContext(r.Context()), filter)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Prospects retrieved successfully", prospects, http.StatusOK)
}

func (h *ProspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProspectRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prospect, err := h.service.Create(ctx, middleware.GetUserIDFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Prospect created successfully", prospect, http.StatusCreated)
}

func (h *ProspectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateProspectStatusRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prospect, err := h.service.UpdateStatus(ctx, middleware.GetUserIDFromContext(r.Context()), id, req.Status)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Prospect updated successfully", prospect, http.StatusOK)
}
