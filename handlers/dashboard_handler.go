package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	middleware "salestrack/middlewares"
	service "salestrack/services"
	"salestrack/utils"

	"go.uber.org/zap"
)

const (
	defaultAnnouncementLimit = 3
	maxAnnouncementLimit     = 50
)

type DashboardHandler struct {
	dashboard     service.DashboardService
	announcements service.AnnouncementService
	logger        *zap.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, announcements service.AnnouncementService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard:     dashboard,
		announcements: announcements,
		logger:        logger,
	}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dashboard, err := h.dashboard.Dashboard(ctx, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Dashboard retrieved successfully", dashboard, http.StatusOK)
}

func (h *DashboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := h.dashboard.Leaderboard(ctx, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Leaderboard retrieved successfully", entries, http.StatusOK)
}

// Announcements returns the newest announcements, ?limit= of them.
func (h *DashboardHandler) Announcements(w http.ResponseWriter, r *http.Request) {
	limit := defaultAnnouncementLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAnnouncementLimit {
			utils.HandleMessageResponse(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	announcements, err := h.announcements.Latest(ctx, limit)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Announcements retrieved successfully", announcements, http.StatusOK)
}
