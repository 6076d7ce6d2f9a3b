package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"salestrack/database"
	"salestrack/models"
	repository "salestrack/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

type ProspectFilter struct {
	Status string
	Range  string
	Search string
}

type ProspectService interface {
	List(ctx context.Context, uid string, filter ProspectFilter) ([]models.Prospect, error)
	Create(ctx context.Context, uid string, req *models.CreateProspectRequest) (*models.Prospect, error)
	UpdateStatus(ctx context.Context, uid, id, status string) (*models.Prospect, error)
}

type prospectService struct {
	prospects repository.ProspectRepository
	cal       Calendar
	logger    *zap.Logger
}

func NewProspectService(prospects repository.ProspectRepository, cal Calendar, logger *zap.Logger) ProspectService {
	return &prospectService{
		prospects: prospects,
		cal:       cal,
		logger:    logger,
	}
}

func (s *prospectService) List(ctx context.Context, uid string, filter ProspectFilter) ([]models.Prospect, error) {
	all, err := s.prospects.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}

	since, err := s.rangeStart(filter.Range)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Prospect, 0, len(all))
	for _, p := range all {
		if filter.Status != "" && filter.Status != RangeAll && p.Status != filter.Status {
			continue
		}
		if !since.IsZero() && p.DateAdded.Before(since) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateAdded.After(out[j].DateAdded)
	})
	return out, nil
}

// rangeStart returns the lower dateAdded bound for a range filter, zero for all.
func (s *prospectService) rangeStart(r string) (time.Time, error) {
	now := s.cal.Now()
	switch r {
	case "", RangeAll:
		return time.Time{}, nil
	case RangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case RangeWeek:
		return now.AddDate(0, 0, -7), nil
	case RangeMonth:
		return now.AddDate(0, -1, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown range %q", r)
}

func matchesSearch(p models.Prospect, term string) bool {
	for _, field := range []string{p.Name, p.Contact, p.Source, p.Remarks} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (s *prospectService) Create(ctx context.Context, uid string, req *models.CreateProspectRequest) (*models.Prospect, error) {
	now := s.cal.Now()
	prospect := &models.Prospect{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Contact:   req.Contact,
		Source:    req.Source,
		Remarks:   req.Remarks,
		Status:    models.ProspectPending,
		UserID:    uid,
		DateAdded: now,
		UpdatedAt: now,
	}
	if err := s.prospects.Create(ctx, uid, prospect); err != nil {
		return nil, err
	}
	return prospect, nil
}

// UpdateStatus moves a pending prospect to converted or lost.
func (s *prospectService) UpdateStatus(ctx context.Context, uid, id, status string) (*models.Prospect, error) {
	if status != models.ProspectConverted && status != models.ProspectLost {
		return nil, ErrInvalidTransition
	}

	prospect, err := s.prospects.GetByID(ctx, uid, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if prospect.Status != models.ProspectPending {
		return nil, ErrInvalidTransition
	}

	now := s.cal.Now()
	err = s.prospects.Update(ctx, uid, id, map[string]any{
		"status":    status,
		"updatedAt": now,
	})
	if err != nil {
		return nil, err
	}

	prospect.Status = status
	prospect.UpdatedAt = now
	s.logger.Debug("prospect status updated",
		zap.String("user_id", uid),
		zap.String("prospect_id", id),
		zap.String("status", status))
	return prospect, nil
}
