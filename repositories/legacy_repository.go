package repository

import (
	"context"

	"salestrack/database"
	"salestrack/models"
)

// LegacyRepository reads the flat collections of the previous schema.
type LegacyRepository interface {
	GetUsers(ctx context.Context) ([]Entry[models.LegacyUser], error)
	GetCommitments(ctx context.Context) ([]Entry[models.LegacyCommitment], error)
	GetReports(ctx context.Context) ([]Entry[models.LegacyReport], error)
	GetUserStats(ctx context.Context) ([]Entry[models.LegacyUserStats], error)
}

type legacyRepository struct {
	store database.DocumentStore
}

func NewLegacyRepository(store database.DocumentStore) LegacyRepository {
	return &legacyRepository{store: store}
}

func (r *legacyRepository) GetUsers(ctx context.Context) ([]Entry[models.LegacyUser], error) {
	return listAs[models.LegacyUser](ctx, r.store, database.CollectionUsers)
}

func (r *legacyRepository) GetCommitments(ctx context.Context) ([]Entry[models.LegacyCommitment], error) {
	return listAs[models.LegacyCommitment](ctx, r.store, database.CollectionLegacyCommitments)
}

func (r *legacyRepository) GetReports(ctx context.Context) ([]Entry[models.LegacyReport], error) {
	return listAs[models.LegacyReport](ctx, r.store, database.CollectionLegacyReports)
}

func (r *legacyRepository) GetUserStats(ctx context.Context) ([]Entry[models.LegacyUserStats], error) {
	return listAs[models.LegacyUserStats](ctx, r.store, database.CollectionLegacyUserStats)
}
