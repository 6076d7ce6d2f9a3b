package repository

import (
	"context"
	"fmt"

	"salestrack/database"
	"salestrack/models"
)

type ProspectRepository interface {
	// GetByID returns database.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, uid, id string) (*models.Prospect, error)
	GetAll(ctx context.Context, uid string) ([]models.Prospect, error)
	Create(ctx context.Context, uid string, p *models.Prospect) error
	Update(ctx context.Context, uid, id string, fields map[string]any) error
}

type prospectRepository struct {
	store database.DocumentStore
}

func NewProspectRepository(store database.DocumentStore) ProspectRepository {
	return &prospectRepository{store: store}
}

func (r *prospectRepository) GetByID(ctx context.Context, uid, id string) (*models.Prospect, error) {
	var p models.Prospect
	if err := r.store.Get(ctx, database.ProspectPath(uid, id), &p); err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (r *prospectRepository) GetAll(ctx context.Context, uid string) ([]models.Prospect, error) {
	entries, err := listAs[models.Prospect](ctx, r.store, database.ProspectsCollection(uid))
	if err != nil {
		return nil, err
	}

	prospects := make([]models.Prospect, 0, len(entries))
	for _, e := range entries {
		e.Value.ID = e.ID
		prospects = append(prospects, e.Value)
	}
	return prospects, nil
}

func (r *prospectRepository) Create(ctx context.Context, uid string, p *models.Prospect) error {
	if err := r.store.Set(ctx, database.ProspectPath(uid, p.ID), p); err != nil {
		return fmt.Errorf("failed to create prospect: %w", err)
	}
	return nil
}

func (r *prospectRepository) Update(ctx context.Context, uid, id string, fields map[string]any) error {
	if err := r.store.Merge(ctx, database.ProspectPath(uid, id), fields); err != nil {
		return fmt.Errorf("failed to update prospect %s: %w", id, err)
	}
	return nil
}
