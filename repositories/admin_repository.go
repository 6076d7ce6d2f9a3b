package repository

import (
	"context"
	"fmt"

	"salestrack/database"
	"salestrack/models"
)

// AdminRepository covers the root collections behind announcements, the
// activity feed and the admin overview.
type AdminRepository interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
	RecordActivity(ctx context.Context, a *models.Activity) error
	GetActivities(ctx context.Context) ([]models.Activity, error)
	Count(ctx context.Context, collection string) (int, error)
	GetClosures(ctx context.Context) ([]models.ClosureRecord, error)
}

type adminRepository struct {
	store database.DocumentStore
}

func NewAdminRepository(store database.DocumentStore) AdminRepository {
	return &adminRepository{store: store}
}

func (r *adminRepository) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	if err := r.store.Set(ctx, database.AnnouncementPath(a.ID), a); err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *adminRepository) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	entries, err := listAs[models.Announcement](ctx, r.store, database.CollectionAnnouncements)
	if err != nil {
		return nil, err
	}

	out := make([]models.Announcement, 0, len(entries))
	for _, e := range entries {
		e.Value.ID = e.ID
		out = append(out, e.Value)
	}
	return out, nil
}

func (r *adminRepository) RecordActivity(ctx context.Context, a *models.Activity) error {
	if err := r.store.Set(ctx, database.ActivityPath(a.ID), a); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

func (r *adminRepository) GetActivities(ctx context.Context) ([]models.Activity, error) {
	entries, err := listAs[models.Activity](ctx, r.store, database.CollectionActivities)
	if err != nil {
		return nil, err
	}

	out := make([]models.Activity, 0, len(entries))
	for _, e := range entries {
		e.Value.ID = e.ID
		out = append(out, e.Value)
	}
	return out, nil
}

func (r *adminRepository) Count(ctx context.Context, collection string) (int, error) {
	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return len(docs), nil
}

func (r *adminRepository) GetClosures(ctx context.Context) ([]models.ClosureRecord, error) {
	entries, err := listAs[models.ClosureRecord](ctx, r.store, database.CollectionClosures)
	if err != nil {
		return nil, err
	}

	out := make([]models.ClosureRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out, nil
}
