package services

import (
	"context"
	"fmt"
	"sort"

	"salestrack/database"
	"salestrack/metrics"
	"salestrack/models"
	"salestrack/periods"
	repository "salestrack/repositories"

	"go.uber.org/zap"
)

type CommitmentService interface {
	SubmitDaily(ctx context.Context, uid string, req *models.CommitmentRequest) (*models.Commitment, error)
	// GetDaily returns nil when nothing was committed for dateKey.
	GetDaily(ctx context.Context, uid, dateKey string) (*models.Commitment, error)
	GetToday(ctx context.Context, uid string) (*models.Commitment, error)
	ListDaily(ctx context.Context, uid string) ([]models.CommitmentSummary, error)
	GetDay(ctx context.Context, uid, dateKey string) (*models.DayRecord, error)
}

type commitmentService struct {
	commitments repository.CommitmentRepository
	reports     repository.ReportRepository
	admin       repository.AdminRepository
	cal         Calendar
	logger      *zap.Logger
}

func NewCommitmentService(
	commitments repository.CommitmentRepository,
	reports repository.ReportRepository,
	admin repository.AdminRepository,
	cal Calendar,
	logger *zap.Logger,
) CommitmentService {
	return &commitmentService{
		commitments: commitments,
		reports:     reports,
		admin:       admin,
		cal:         cal,
		logger:      logger,
	}
}

// SubmitDaily writes today's commitment and its weekly and monthly snapshots.
// The existence check and the writes are separate round trips.
func (s *commitmentService) SubmitDaily(ctx context.Context, uid string, req *models.CommitmentRequest) (*models.Commitment, error) {
	now := s.cal.Now()
	keys := periods.KeysFor(now)

	exists, err := s.commitments.Exists(ctx, uid, database.PeriodDaily, keys.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's commitment: %w", err)
	}
	if exists {
		metrics.RecordDuplicateSubmission("commitment")
		return nil, ErrAlreadySubmitted
	}

	closures := req.ExpectedClosures
	if closures == nil {
		closures = []models.ExpectedClosure{}
	}
	meetings := req.ExpectedMeetings
	if meetings == nil {
		meetings = []models.ExpectedMeeting{}
	}

	var revenue float64
	for _, c := range closures {
		revenue += c.ExpectedRevenue
	}

	_, endOfDay := periods.DayBounds(now)
	commitment := &models.Commitment{
		UserID:               uid,
		Date:                 keys.Day,
		Target:               req.CallsToBeMade,
		Achieved:             0,
		Status:               models.StatusPending,
		WeekNumber:           keys.WeekNumber,
		ExpectedClosures:     closures,
		ExpectedClosureCount: len(closures),
		ExpectedMeetings:     meetings,
		ExpectedProspects:    req.ExpectedProspects,
		TotalExpectedRevenue: revenue,
		StartDate:            now,
		EndDate:              endOfDay,
		DayOfWeek:            int(now.Weekday()),
		DayOfMonth:           now.Day(),
		MonthNumber:          int(now.Month()),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	writes := []struct{ period, key string }{
		{database.PeriodDaily, keys.Day},
		{database.PeriodWeekly, keys.Week},
		{database.PeriodMonthly, keys.Month},
	}
	for _, w := range writes {
		if err := s.commitments.Set(ctx, uid, w.period, w.key, commitment); err != nil {
			return nil, err
		}
	}

	metrics.RecordCommitmentSubmitted()
	recordActivity(ctx, s.admin, s.logger, s.cal, uid, models.ActivityCommitmentSubmitted,
		fmt.Sprintf("Committed to %d calls for %s", commitment.Target, keys.Day))

	s.logger.Info("daily commitment submitted",
		zap.String("user_id", uid),
		zap.String("date", keys.Day),
		zap.Int("target", commitment.Target))
	return commitment, nil
}

func (s *commitmentService) GetDaily(ctx context.Context, uid, dateKey string) (*models.Commitment, error) {
	return s.commitments.Get(ctx, uid, database.PeriodDaily, dateKey)
}

func (s *commitmentService) GetToday(ctx context.Context, uid string) (*models.Commitment, error) {
	return s.GetDaily(ctx, uid, s.cal.Today().Day)
}

func (s *commitmentService) ListDaily(ctx context.Context, uid string) ([]models.CommitmentSummary, error) {
	commitments, err := s.commitments.GetAll(ctx, uid, database.PeriodDaily)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}

	filed := make(map[string]bool, len(reports))
	for _, r := range reports {
		filed[r.ID] = true
	}

	summaries := make([]models.CommitmentSummary, 0, len(commitments))
	for _, c := range commitments {
		if c.Value.Date == "" {
			c.Value.Date = c.ID
		}
		summaries = append(summaries, models.CommitmentSummary{
			Commitment:  c.Value,
			ReportFiled: filed[c.ID],
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})
	return summaries, nil
}

func (s *commitmentService) GetDay(ctx context.Context, uid, dateKey string) (*models.DayRecord, error) {
	commitment, err := s.commitments.Get(ctx, uid, database.PeriodDaily, dateKey)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.Get(ctx, uid, dateKey)
	if err != nil {
		return nil, err
	}
	return &models.DayRecord{Date: dateKey, Commitment: commitment, Report: report}, nil
}
