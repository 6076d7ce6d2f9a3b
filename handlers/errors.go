package handlers

import (
	"errors"
	"net/http"

	"salestrack/database"
	service "salestrack/services"
	"salestrack/utils"

	"go.uber.org/zap"
)

// handleServiceError turns a service error into a response. Anything not in
// the table is logged and answered with a generic 500.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadySubmitted):
		utils.HandleMessageResponse(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrEmailTaken):
		utils.HandleMessageResponse(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrNotFound):
		utils.HandleMessageResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		utils.HandleMessageResponse(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrAccountDisabled), errors.Is(err, service.ErrForbidden):
		utils.HandleMessageResponse(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrPasswordTooLong):
		utils.HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		utils.HandleMessageResponse(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pathID reads the {name} wildcard and answers 400 unless it is a single id
// segment. PathValue has already unescaped %2F at this point.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if err := database.ValidateID(id); err != nil {
		utils.HandleMessageResponse(w, "Invalid "+name, http.StatusBadRequest)
		return "", false
	}
	return id, true
}
