package services

import (
	"context"
	"time"

	"salestrack/models"
	repository "salestrack/repositories"
)

// rollupChange adds tasks/extra to an existing rollup, or writes seed when the
// rollup does not exist yet.
type rollupChange struct {
	tasks int
	extra int
	seed  models.StatsRollup
}

func applyRollup(ctx context.Context, repo repository.StatsRepository, uid, kind, key string, change rollupChange, now time.Time) (models.StatsRollup, error) {
	current, err := repo.Get(ctx, uid, kind, key)
	if err != nil {
		return models.StatsRollup{}, err
	}

	if current == nil {
		seed := change.seed
		if seed.CreatedAt.IsZero() {
			seed.CreatedAt = now
		}
		seed.UpdatedAt = now
		if err := repo.Set(ctx, uid, kind, key, &seed); err != nil {
			return models.StatsRollup{}, err
		}
		return seed, nil
	}

	current.TasksCompleted += change.tasks
	current.ExtraTasks += change.extra
	current.UpdatedAt = now
	err = repo.Update(ctx, uid, kind, key, map[string]any{
		"tasksCompleted": current.TasksCompleted,
		"extraTasks":     current.ExtraTasks,
		"updatedAt":      now,
	})
	if err != nil {
		return models.StatsRollup{}, err
	}
	return *current, nil
}

func overage(made, target int) int {
	return max(0, made-target)
}
