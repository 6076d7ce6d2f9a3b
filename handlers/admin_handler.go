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

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	employees     service.EmployeeService
	announcements service.AnnouncementService
	export        service.ExportService
	logger        *zap.Logger
}

func NewAdminHandler(
	employees service.EmployeeService,
	announcements service.AnnouncementService,
	export service.ExportService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		employees:     employees,
		announcements: announcements,
		export:        export,
		logger:        logger,
	}
}

func (h *AdminHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req models.AnnouncementRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	announcement, err := h.announcements.Create(ctx, middleware.GetUserIDFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Announcement created successfully", announcement, http.StatusCreated)
}

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	overview, err := h.employees.Overview(ctx)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Overview retrieved successfully", overview, http.StatusOK)
}

// ListEmployees accepts an optional ?role= filter.
func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.employees.List(ctx, r.URL.Query().Get("role"))
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Employees retrieved successfully", users, http.StatusOK)
}

func (h *AdminHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.employees.Create(ctx, &req)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Employee created successfully", user, http.StatusCreated)
}

func (h *AdminHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.employees.Get(ctx, id)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Employee retrieved successfully", detail, http.StatusOK)
}

func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateRoleRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.employees.UpdateRole(ctx, id, req.Role)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Role updated successfully", user, http.StatusOK)
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	if id == middleware.GetUserIDFromContext(r.Context()) && !*req.IsActive {
		utils.HandleMessageResponse(w, "You cannot deactivate your own account", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.employees.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleDataResponse(w, "Status updated successfully", user, http.StatusOK)
}

func (h *AdminHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	data, filename, err := h.export.EmployeeReports(ctx, id)
	if err != nil {
		handleServiceError(w, h.logger, r, err)
		return
	}

	utils.HandleFileResponse(w, xlsxContentType, filename, data)
}
