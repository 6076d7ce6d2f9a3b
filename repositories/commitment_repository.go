package repository

import (
	"context"
	"fmt"

	"salestrack/database"
	"salestrack/models"
)

// CommitmentRepository stores commitments per user under daily, weekly and
// monthly period collections. Get returns nil when nothing was committed.
type CommitmentRepository interface {
	Get(ctx context.Context, uid, period, key string) (*models.Commitment, error)
	Exists(ctx context.Context, uid, period, key string) (bool, error)
	Set(ctx context.Context, uid, period, key string, c *models.Commitment) error
	Update(ctx context.Context, uid, period, key string, fields map[string]any) error
	// GetAll returns the entries of a period keyed by period key, ordered by key.
	GetAll(ctx context.Context, uid, period string) ([]Entry[models.Commitment], error)
}

type commitmentRepository struct {
	store database.DocumentStore
}

func NewCommitmentRepository(store database.DocumentStore) CommitmentRepository {
	return &commitmentRepository{store: store}
}

func (r *commitmentRepository) Get(ctx context.Context, uid, period, key string) (*models.Commitment, error) {
	c, err := findOptional[models.Commitment](ctx, r.store, database.CommitmentPath(uid, period, key))
	if err != nil || c == nil {
		return c, err
	}
	c.Status = models.NormalizeStatus(c.Status)
	return c, nil
}

func (r *commitmentRepository) Exists(ctx context.Context, uid, period, key string) (bool, error) {
	return r.store.Exists(ctx, database.CommitmentPath(uid, period, key))
}

func (r *commitmentRepository) Set(ctx context.Context, uid, period, key string, c *models.Commitment) error {
	if err := r.store.Set(ctx, database.CommitmentPath(uid, period, key), c); err != nil {
		return fmt.Errorf("failed to write %s commitment %s: %w", period, key, err)
	}
	return nil
}

func (r *commitmentRepository) Update(ctx context.Context, uid, period, key string, fields map[string]any) error {
	if err := r.store.Merge(ctx, database.CommitmentPath(uid, period, key), fields); err != nil {
		return fmt.Errorf("failed to update %s commitment %s: %w", period, key, err)
	}
	return nil
}

func (r *commitmentRepository) GetAll(ctx context.Context, uid, period string) ([]Entry[models.Commitment], error) {
	entries, err := listAs[models.Commitment](ctx, r.store, database.CommitmentsCollection(uid, period))
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Value.Status = models.NormalizeStatus(entries[i].Value.Status)
	}
	return entries, nil
}
