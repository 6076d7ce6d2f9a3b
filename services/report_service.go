package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"salestrack/database"
	"salestrack/metrics"
	"salestrack/models"
	"salestrack/periods"
	repository "salestrack/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	SubmitDaily(ctx context.Context, uid string, req *models.ReportRequest) (*models.ReportSubmission, error)
	// GetDaily returns nil when no report was filed for dateKey.
	GetDaily(ctx context.Context, uid, dateKey string) (*models.Report, error)
	ListDaily(ctx context.Context, uid string) ([]models.ReportSummary, error)
	ListMeetings(ctx context.Context, uid, dateKey string) ([]models.MeetingOutcome, error)
}

type reportService struct {
	reports     repository.ReportRepository
	commitments repository.CommitmentRepository
	stats       repository.StatsRepository
	prospects   repository.ProspectRepository
	admin       repository.AdminRepository
	cal         Calendar
	logger      *zap.Logger
}

func NewReportService(
	reports repository.ReportRepository,
	commitments repository.CommitmentRepository,
	stats repository.StatsRepository,
	prospects repository.ProspectRepository,
	admin repository.AdminRepository,
	cal Calendar,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		reports:     reports,
		commitments: commitments,
		stats:       stats,
		prospects:   prospects,
		admin:       admin,
		cal:         cal,
		logger:      logger,
	}
}

// SubmitDaily files today's report. Writes happen in this order, each as its
// own round trip: commitment outcome, weekly rollup, monthly rollup, report,
// prospects, meeting outcomes. A failure stops the sequence without undoing
// earlier writes.
func (s *reportService) SubmitDaily(ctx context.Context, uid string, req *models.ReportRequest) (*models.ReportSubmission, error) {
	now := s.cal.Now()
	keys := periods.KeysFor(now)

	exists, err := s.reports.Exists(ctx, uid, keys.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's report: %w", err)
	}
	if exists {
		metrics.RecordDuplicateSubmission("report")
		return nil, ErrAlreadySubmitted
	}

	commitment, err := s.commitments.Get(ctx, uid, database.PeriodDaily, keys.Day)
	if err != nil {
		return nil, err
	}

	target := 0
	tasks, extra := 0, req.CallsMade
	if commitment != nil {
		target = commitment.Target
		status := models.StatusMissed
		if req.CallsMade >= target {
			status = models.StatusAchieved
		}
		err := s.commitments.Update(ctx, uid, database.PeriodDaily, keys.Day, map[string]any{
			"achieved":  req.CallsMade,
			"status":    status,
			"updatedAt": now,
		})
		if err != nil {
			return nil, err
		}
		commitment.Achieved = req.CallsMade
		commitment.Status = status
		commitment.UpdatedAt = now

		tasks, extra = 1, overage(req.CallsMade, target)
	}

	weekStart, weekEnd := periods.WeekBounds(now)
	weekly, err := applyRollup(ctx, s.stats, uid, database.StatsWeekly, keys.Week, rollupChange{
		tasks: tasks,
		extra: extra,
		seed:  models.StatsRollup{TasksCompleted: tasks, ExtraTasks: extra, StartDate: weekStart, EndDate: weekEnd},
	}, now)
	if err != nil {
		return nil, err
	}

	monthStart, monthEnd := periods.MonthBounds(now)
	monthly, err := applyRollup(ctx, s.stats, uid, database.StatsMonthly, keys.Month, rollupChange{
		tasks: tasks,
		extra: extra,
		seed:  models.StatsRollup{TasksCompleted: tasks, ExtraTasks: extra, StartDate: monthStart, EndDate: monthEnd},
	}, now)
	if err != nil {
		return nil, err
	}

	report := buildReport(req, target, commitment != nil, now, keys)
	if err := s.reports.Set(ctx, uid, keys.Day, report); err != nil {
		return nil, err
	}

	prospects := make([]models.Prospect, 0, len(req.Prospects))
	for _, p := range req.Prospects {
		prospect := models.Prospect{
			ID:         uuid.NewString(),
			Name:       p.Name,
			Contact:    p.Contact,
			Source:     p.Source,
			Remarks:    p.Remarks,
			Status:     models.ProspectPending,
			UserID:     uid,
			DateAdded:  now,
			ReportDate: keys.Day,
			UpdatedAt:  now,
		}
		if err := s.prospects.Create(ctx, uid, &prospect); err != nil {
			return nil, err
		}
		prospects = append(prospects, prospect)
	}

	for _, m := range req.MeetingOutcomes {
		id := uuid.NewString()
		meetingID := m.MeetingID
		if meetingID == "" {
			meetingID = id
		}
		meeting := &models.MeetingOutcome{
			MeetingID:       meetingID,
			ProspectID:      m.ProspectID,
			ProspectName:    m.ProspectName,
			Outcome:         m.Outcome,
			ExpectedRevenue: m.ExpectedRevenue,
			RescheduledDate: m.RescheduledDate,
			Notes:           m.Notes,
			UserID:          uid,
			Date:            now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.reports.AddMeeting(ctx, uid, keys.Day, id, meeting); err != nil {
			return nil, err
		}
	}

	metrics.RecordReportSubmitted()
	recordActivity(ctx, s.admin, s.logger, s.cal, uid, models.ActivityReportSubmitted,
		fmt.Sprintf("Reported %d calls for %s", req.CallsMade, keys.Day))

	s.logger.Info("daily report submitted",
		zap.String("user_id", uid),
		zap.String("date", keys.Day),
		zap.Int("calls_made", req.CallsMade),
		zap.Int("target", target),
		zap.Bool("had_commitment", commitment != nil))

	return &models.ReportSubmission{
		Report:     *report,
		Commitment: commitment,
		Weekly:     weekly,
		Monthly:    monthly,
		Prospects:  prospects,
	}, nil
}

func buildReport(req *models.ReportRequest, target int, hasCommitment bool, now time.Time, keys periods.Keys) *models.Report {
	completion := 100.0
	if hasCommitment && target > 0 {
		completion = float64(req.CallsMade) / float64(target) * 100
	}

	var expectedRevenue float64
	converted := 0
	for _, m := range req.MeetingOutcomes {
		expectedRevenue += m.ExpectedRevenue
		if m.Outcome == models.OutcomeConverted {
			converted++
		}
	}

	closures := req.Closures
	if closures == nil {
		closures = []models.Closure{}
	}
	var revenue float64
	for _, c := range closures {
		revenue += c.Amount
	}

	return &models.Report{
		CallsMade:            req.CallsMade,
		CallsTarget:          target,
		Completion:           completion,
		ProspectsCount:       len(req.Prospects),
		TotalProspects:       len(req.Prospects),
		ConvertedProspects:   converted,
		MeetingsBooked:       len(req.MeetingOutcomes),
		TotalExpectedRevenue: expectedRevenue,
		Closures:             closures,
		RevenueGenerated:     revenue,
		Feedback:             req.Feedback,
		Date:                 now,
		DateStr:              keys.Day,
		WeekStr:              keys.Week,
		MonthStr:             keys.Month,
		Year:                 now.Year(),
		Month:                int(now.Month()),
		Day:                  now.Day(),
		WeekNumber:           keys.WeekNumber,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func (s *reportService) GetDaily(ctx context.Context, uid, dateKey string) (*models.Report, error) {
	return s.reports.Get(ctx, uid, dateKey)
}

func (s *reportService) ListDaily(ctx context.Context, uid string) ([]models.ReportSummary, error) {
	reports, err := s.reports.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}
	commitments, err := s.commitments.GetAll(ctx, uid, database.PeriodDaily)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]models.Commitment, len(commitments))
	for _, c := range commitments {
		byDay[c.ID] = c.Value
	}

	summaries := make([]models.ReportSummary, 0, len(reports))
	for _, r := range reports {
		if r.Value.DateStr == "" {
			r.Value.DateStr = r.ID
		}
		summary := models.ReportSummary{Report: r.Value}
		if c, ok := byDay[r.ID]; ok {
			target := c.Target
			summary.CommitmentTarget = &target
			summary.CommitmentStatus = c.Status
		}
		summaries = append(summaries, summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].DateStr > summaries[j].DateStr
	})
	return summaries, nil
}

func (s *reportService) ListMeetings(ctx context.Context, uid, dateKey string) ([]models.MeetingOutcome, error) {
	return s.reports.GetMeetings(ctx, uid, dateKey)
}
