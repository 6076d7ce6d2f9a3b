package services

import (
	"context"
	"sort"

	"salestrack/models"
	repository "salestrack/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementService interface {
	Create(ctx context.Context, createdBy string, req *models.AnnouncementRequest) (*models.Announcement, error)
	Latest(ctx context.Context, n int) ([]models.Announcement, error)
}

type announcementService struct {
	admin  repository.AdminRepository
	cal    Calendar
	logger *zap.Logger
}

func NewAnnouncementService(admin repository.AdminRepository, cal Calendar, logger *zap.Logger) AnnouncementService {
	return &announcementService{admin: admin, cal: cal, logger: logger}
}

func (s *announcementService) Create(ctx context.Context, createdBy string, req *models.AnnouncementRequest) (*models.Announcement, error) {
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	announcement := &models.Announcement{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Priority:  priority,
		CreatedBy: createdBy,
		CreatedAt: s.cal.Now(),
	}
	if err := s.admin.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info("announcement created", zap.String("id", announcement.ID), zap.String("created_by", createdBy))
	return announcement, nil
}

// Latest returns up to n announcements, newest first.
func (s *announcementService) Latest(ctx context.Context, n int) ([]models.Announcement, error) {
	all, err := s.admin.GetAnnouncements(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}
