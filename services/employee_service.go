package services

import (
	"context"
	"errors"
	"sort"

	"salestrack/database"
	"salestrack/models"
	repository "salestrack/repositories"

	"go.uber.org/zap"
)

const recentActivityCount = 5

type EmployeeService interface {
	List(ctx context.Context, role string) ([]models.User, error)
	Get(ctx context.Context, uid string) (*models.EmployeeDetail, error)
	Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.User, error)
	UpdateRole(ctx context.Context, uid, role string) (*models.User, error)
	SetActive(ctx context.Context, uid string, active bool) (*models.User, error)
	Overview(ctx context.Context) (*models.Overview, error)
}

type employeeService struct {
	users       repository.UserRepository
	commitments CommitmentService
	reports     ReportService
	auth        AuthService
	admin       repository.AdminRepository
	logger      *zap.Logger
}

func NewEmployeeService(
	users repository.UserRepository,
	commitments CommitmentService,
	reports ReportService,
	auth AuthService,
	admin repository.AdminRepository,
	logger *zap.Logger,
) EmployeeService {
	return &employeeService{
		users:       users,
		commitments: commitments,
		reports:     reports,
		auth:        auth,
		admin:       admin,
		logger:      logger,
	}
}

// List returns users sorted by name, optionally restricted to one role.
func (s *employeeService) List(ctx context.Context, role string) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if role != "" && role != "all" && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *employeeService) Get(ctx context.Context, uid string) (*models.EmployeeDetail, error) {
	user, err := s.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	commitments, err := s.commitments.ListDaily(ctx, uid)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.ListDaily(ctx, uid)
	if err != nil {
		return nil, err
	}

	detail := &models.EmployeeDetail{
		User:        *user,
		Commitments: make([]models.Commitment, 0, len(commitments)),
		Reports:     make([]models.Report, 0, len(reports)),
	}
	for _, c := range commitments {
		detail.Commitments = append(detail.Commitments, c.Commitment)
	}
	for _, r := range reports {
		detail.Reports = append(detail.Reports, r.Report)
	}
	return detail, nil
}

func (s *employeeService) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.User, error) {
	session, err := s.auth.SignUp(ctx, &models.SignUpRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}, req.Role)
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}

func (s *employeeService) UpdateRole(ctx context.Context, uid, role string) (*models.User, error) {
	return s.update(ctx, uid, map[string]any{"role": role})
}

func (s *employeeService) SetActive(ctx context.Context, uid string, active bool) (*models.User, error) {
	return s.update(ctx, uid, map[string]any{"isActive": active})
}

func (s *employeeService) update(ctx context.Context, uid string, fields map[string]any) (*models.User, error) {
	// Merge would create a stub document for an unknown id.
	if _, err := s.getUser(ctx, uid); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, uid, fields); err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", zap.String("user_id", uid), zap.Any("fields", fields))
	return s.getUser(ctx, uid)
}

func (s *employeeService) getUser(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *employeeService) Overview(ctx context.Context) (*models.Overview, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	overview := &models.Overview{TotalEmployees: len(users)}
	names := make(map[string]string, len(users))
	for _, u := range users {
		if u.IsActive {
			overview.ActiveEmployees++
		}
		names[u.UID] = u.Name
	}

	if overview.TotalProspects, err = s.admin.Count(ctx, database.CollectionProspects); err != nil {
		return nil, err
	}
	if overview.TotalMeetings, err = s.admin.Count(ctx, database.CollectionMeetings); err != nil {
		return nil, err
	}

	closures, err := s.admin.GetClosures(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range closures {
		overview.TotalRevenue += c.Amount
	}

	activities, err := s.admin.GetActivities(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > recentActivityCount {
		activities = activities[:recentActivityCount]
	}

	overview.RecentActivities = make([]models.ActivityView, 0, len(activities))
	for _, a := range activities {
		name, ok := names[a.UserID]
		if !ok || name == "" {
			name = "Unknown User"
		}
		overview.RecentActivities = append(overview.RecentActivities, models.ActivityView{Activity: a, UserName: name})
	}
	return overview, nil
}
