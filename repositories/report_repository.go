package repository

import (
	"context"
	"fmt"

	"salestrack/database"
	"salestrack/models"
)

// ReportRepository stores daily reports and their meeting outcomes. Get
// returns nil when no report was filed for the day.
type ReportRepository interface {
	Get(ctx context.Context, uid, dateKey string) (*models.Report, error)
	Exists(ctx context.Context, uid, dateKey string) (bool, error)
	Set(ctx context.Context, uid, dateKey string, report *models.Report) error
	GetAll(ctx context.Context, uid string) ([]Entry[models.Report], error)
	AddMeeting(ctx context.Context, uid, dateKey, id string, meeting *models.MeetingOutcome) error
	GetMeetings(ctx context.Context, uid, dateKey string) ([]models.MeetingOutcome, error)
}

type reportRepository struct {
	store database.DocumentStore
}

func NewReportRepository(store database.DocumentStore) ReportRepository {
	return &reportRepository{store: store}
}

func (r *reportRepository) Get(ctx context.Context, uid, dateKey string) (*models.Report, error) {
	return findOptional[models.Report](ctx, r.store, database.ReportPath(uid, dateKey))
}

func (r *reportRepository) Exists(ctx context.Context, uid, dateKey string) (bool, error) {
	return r.store.Exists(ctx, database.ReportPath(uid, dateKey))
}

func (r *reportRepository) Set(ctx context.Context, uid, dateKey string, report *models.Report) error {
	if err := r.store.Set(ctx, database.ReportPath(uid, dateKey), report); err != nil {
		return fmt.Errorf("failed to write report %s: %w", dateKey, err)
	}
	return nil
}

func (r *reportRepository) GetAll(ctx context.Context, uid string) ([]Entry[models.Report], error) {
	return listAs[models.Report](ctx, r.store, database.ReportsCollection(uid))
}

func (r *reportRepository) AddMeeting(ctx context.Context, uid, dateKey, id string, meeting *models.MeetingOutcome) error {
	if err := r.store.Set(ctx, database.MeetingPath(uid, dateKey, id), meeting); err != nil {
		return fmt.Errorf("failed to write meeting %s: %w", id, err)
	}
	return nil
}

func (r *reportRepository) GetMeetings(ctx context.Context, uid, dateKey string) ([]models.MeetingOutcome, error) {
	entries, err := listAs[models.MeetingOutcome](ctx, r.store, database.MeetingsCollection(uid, dateKey))
	if err != nil {
		return nil, err
	}

	meetings := make([]models.MeetingOutcome, 0, len(entries))
	for _, e := range entries {
		meetings = append(meetings, e.Value)
	}
	return meetings, nil
}
