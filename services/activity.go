package services

import (
	"context"

	"salestrack/models"
	repository "salestrack/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recordActivity appends to the activity feed. Failures are logged only.
func recordActivity(ctx context.Context, repo repository.AdminRepository, logger *zap.Logger, cal Calendar, uid, kind, description string) {
	activity := &models.Activity{
		ID:          uuid.NewString(),
		Type:        kind,
		Description: description,
		UserID:      uid,
		Timestamp:   cal.Now(),
	}
	if err := repo.RecordActivity(ctx, activity); err != nil {
		logger.Warn("failed to record activity",
			zap.String("user_id", uid),
			zap.String("type", kind),
			zap.Error(err))
	}
}
