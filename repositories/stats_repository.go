package repository

import (
	"context"
	"fmt"

	"salestrack/database"
	"salestrack/models"
)

// StatsRepository reads and writes weekly/monthly accomplishment rollups.
// kind is database.StatsWeekly or database.StatsMonthly.
type StatsRepository interface {
	Get(ctx context.Context, uid, kind, key string) (*models.StatsRollup, error)
	Set(ctx context.Context, uid, kind, key string, rollup *models.StatsRollup) error
	Update(ctx context.Context, uid, kind, key string, fields map[string]any) error
}

type statsRepository struct {
	store database.DocumentStore
}

func NewStatsRepository(store database.DocumentStore) StatsRepository {
	return &statsRepository{store: store}
}

func (r *statsRepository) Get(ctx context.Context, uid, kind, key string) (*models.StatsRollup, error) {
	return findOptional[models.StatsRollup](ctx, r.store, database.StatsPath(uid, kind, key))
}

func (r *statsRepository) Set(ctx context.Context, uid, kind, key string, rollup *models.StatsRollup) error {
	if err := r.store.Set(ctx, database.StatsPath(uid, kind, key), rollup); err != nil {
		return fmt.Errorf("failed to write %s %s: %w", kind, key, err)
	}
	return nil
}

func (r *statsRepository) Update(ctx context.Context, uid, kind, key string, fields map[string]any) error {
	if err := r.store.Merge(ctx, database.StatsPath(uid, kind, key), fields); err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, key, err)
	}
	return nil
}
