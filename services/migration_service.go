package services

import (
	"context"
	"fmt"
	"time"

	"salestrack/database"
	"salestrack/metrics"
	"salestrack/models"
	"salestrack/periods"
	repository "salestrack/repositories"

	"go.uber.org/zap"
)

const (
	StageUsers       = "users"
	StageCommitments = "commitments"
	StageReports     = "reports"
	StageUserStats   = "user_stats"
)

// MigrationService rewrites the flat legacy collections into the per-user
// layout. Running it twice adds the legacy counts to the rollups again.
type MigrationService interface {
	Run(ctx context.Context, log *MigrationLog) models.MigrationSummary
}

type migrationService struct {
	legacy      repository.LegacyRepository
	users       repository.UserRepository
	commitments repository.CommitmentRepository
	reports     repository.ReportRepository
	stats       repository.StatsRepository
	cal         Calendar
}

func NewMigrationService(
	legacy repository.LegacyRepository,
	users repository.UserRepository,
	commitments repository.CommitmentRepository,
	reports repository.ReportRepository,
	stats repository.StatsRepository,
	cal Calendar,
) MigrationService {
	return &migrationService{
		legacy:      legacy,
		users:       users,
		commitments: commitments,
		reports:     reports,
		stats:       stats,
		cal:         cal,
	}
}

type stageFunc func(ctx context.Context, log *MigrationLog) (processed, skipped int, err error)

// Run executes the four stages in order. A failing stage stops at the record
// that failed, is logged and counted, and the next stage still runs.
func (s *migrationService) Run(ctx context.Context, log *MigrationLog) models.MigrationSummary {
	summary := models.MigrationSummary{StartedAt: s.cal.Now()}
	log.Info("", "starting data migration")

	stages := []struct {
		name string
		run  stageFunc
	}{
		{StageUsers, s.migrateUsers},
		{StageCommitments, s.migrateCommitments},
		{StageReports, s.migrateReports},
		{StageUserStats, s.migrateUserStats},
	}

	for _, stage := range stages {
		log.Info(stage.name, fmt.Sprintf("migrating %s", stage.name))

		processed, skipped, err := stage.run(ctx, log)
		result := models.MigrationStageResult{Stage: stage.name, Processed: processed, Skipped: skipped}
		if err != nil {
			result.Error = err.Error()
			metrics.RecordMigrationStageError(stage.name)
			log.Error(stage.name, fmt.Sprintf("error migrating %s", stage.name), err)
		} else {
			log.Info(stage.name, fmt.Sprintf("%s migration completed", stage.name),
				zap.Int("processed", processed),
				zap.Int("skipped", skipped))
		}
		summary.Stages = append(summary.Stages, result)
	}

	summary.FinishedAt = s.cal.Now()
	if summary.Failed() {
		log.Warn("", "data migration finished with errors")
	} else {
		log.Info("", "data migration completed successfully")
	}
	return summary
}

func (s *migrationService) migrateUsers(ctx context.Context, log *MigrationLog) (int, int, error) {
	entries, err := s.legacy.GetUsers(ctx)
	if err != nil {
		return 0, 0, err
	}

	processed := 0
	for _, e := range entries {
		u := e.Value
		now := s.cal.Now()

		name := u.DisplayName
		if name == "" {
			name = u.Name
		}
		role := u.Role
		if role == "" {
			role = models.RoleEmployee
		}
		joined := now
		switch {
		case u.CreatedAt != nil:
			joined = *u.CreatedAt
		case u.JoinedDate != nil:
			joined = *u.JoinedDate
		}
		lastLogin := now
		if u.LastLogin != nil {
			lastLogin = *u.LastLogin
		}
		var picture any
		if u.PhotoURL != "" {
			picture = u.PhotoURL
		}

		err := s.users.Update(ctx, e.ID, map[string]any{
			"uid":               e.ID,
			"email":             u.Email,
			"name":              name,
			"role":              role,
			"joinedDate":        joined,
			"isActive":          true,
			"profilePictureUrl": picture,
			"lastLogin":         lastLogin,
		})
		if err != nil {
			return processed, 0, err
		}
		processed++
		log.Info(StageUsers, fmt.Sprintf("migrated user %s", e.ID))
	}
	return processed, 0, nil
}

func (s *migrationService) migrateCommitments(ctx context.Context, log *MigrationLog) (int, int, error) {
	entries, err := s.legacy.GetCommitments(ctx)
	if err != nil {
		return 0, 0, err
	}

	processed, skipped := 0, 0
	for _, e := range entries {
		c := e.Value
		if c.UserID == "" {
			skipped++
			log.Info(StageCommitments, fmt.Sprintf("skipping commitment %s - no userId", e.ID))
			continue
		}
		if err := s.migrateCommitment(ctx, c); err != nil {
			return processed, skipped, fmt.Errorf("commitment %s: %w", e.ID, err)
		}
		processed++
		log.Info(StageCommitments, fmt.Sprintf("migrated commitment %s for user %s", e.ID, c.UserID))
	}
	return processed, skipped, nil
}

func (s *migrationService) migrateCommitment(ctx context.Context, c models.LegacyCommitment) error {
	now := s.cal.Now()
	date := now
	if c.Date != nil {
		date = s.cal.In(*c.Date)
	}
	keys := periods.KeysFor(date)
	_, endOfDay := periods.DayBounds(date)

	closures := c.ExpectedClosures
	if closures == nil {
		closures = []models.ExpectedClosure{}
	}

	daily := &models.Commitment{
		UserID:               c.UserID,
		Date:                 keys.Day,
		Target:               c.CallsToBeMade,
		Achieved:             c.ActualCalls,
		Status:               models.NormalizeStatus(c.Status),
		WeekNumber:           keys.WeekNumber,
		ExpectedClosures:     closures,
		ExpectedClosureCount: len(closures),
		ExpectedMeetings:     []models.ExpectedMeeting{},
		TotalExpectedRevenue: c.TotalExpectedRevenue,
		StartDate:            date,
		EndDate:              endOfDay,
		DayOfWeek:            int(date.Weekday()),
		DayOfMonth:           date.Day(),
		MonthNumber:          int(date.Month()),
		CreatedAt:            date,
		UpdatedAt:            now,
	}
	if err := s.commitments.Set(ctx, c.UserID, database.PeriodDaily, keys.Day, daily); err != nil {
		return err
	}

	weekStart, weekEnd := periods.CalendarWeekBounds(date)
	if err := s.accumulateCommitment(ctx, c, database.PeriodWeekly, keys.Week, date, weekStart, weekEnd); err != nil {
		return err
	}
	monthStart, monthEnd := periods.MonthBounds(date)
	return s.accumulateCommitment(ctx, c, database.PeriodMonthly, keys.Month, date, monthStart, monthEnd)
}

// accumulateCommitment adds a legacy commitment's counts to a weekly or
// monthly commitment, creating it on first use.
func (s *migrationService) accumulateCommitment(ctx context.Context, c models.LegacyCommitment, period, key string, date, start, end time.Time) error {
	now := s.cal.Now()
	closureCount := len(c.ExpectedClosures)

	existing, err := s.commitments.Get(ctx, c.UserID, period, key)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.commitments.Update(ctx, c.UserID, period, key, map[string]any{
			"target":               existing.Target + c.CallsToBeMade,
			"achieved":             existing.Achieved + c.ActualCalls,
			"expectedClosureCount": existing.ExpectedClosureCount + closureCount,
			"totalExpectedRevenue": existing.TotalExpectedRevenue + c.TotalExpectedRevenue,
			"updatedAt":            now,
		})
	}

	created := &models.Commitment{
		UserID:               c.UserID,
		Target:               c.CallsToBeMade,
		Achieved:             c.ActualCalls,
		Status:               models.NormalizeStatus(c.Status),
		ExpectedClosures:     []models.ExpectedClosure{},
		ExpectedClosureCount: closureCount,
		ExpectedMeetings:     []models.ExpectedMeeting{},
		TotalExpectedRevenue: c.TotalExpectedRevenue,
		StartDate:            start,
		EndDate:              end,
		CreatedAt:            date,
		UpdatedAt:            now,
	}
	if period == database.PeriodWeekly {
		created.WeekNumber = periods.WeekNumber(date)
	} else {
		created.MonthNumber = int(date.Month())
	}
	return s.commitments.Set(ctx, c.UserID, period, key, created)
}

func (s *migrationService) migrateReports(ctx context.Context, log *MigrationLog) (int, int, error) {
	entries, err := s.legacy.GetReports(ctx)
	if err != nil {
		return 0, 0, err
	}

	processed, skipped := 0, 0
	for _, e := range entries {
		r := e.Value
		if r.UserID == "" {
			skipped++
			log.Info(StageReports, fmt.Sprintf("skipping report %s - no userId", e.ID))
			continue
		}
		if err := s.migrateReport(ctx, r); err != nil {
			return processed, skipped, fmt.Errorf("report %s: %w", e.ID, err)
		}
		processed++
		log.Info(StageReports, fmt.Sprintf("migrated report %s for user %s", e.ID, r.UserID))
	}
	return processed, skipped, nil
}

func (s *migrationService) migrateReport(ctx context.Context, r models.LegacyReport) error {
	now := s.cal.Now()
	date := now
	if r.Date != nil {
		date = s.cal.In(*r.Date)
	}
	keys := periods.KeysFor(date)

	prospects := r.Prospects
	if prospects == nil {
		prospects = []models.ReportedProspect{}
	}
	prospectsCount := r.ProspectsCount
	if prospectsCount == 0 {
		prospectsCount = len(prospects)
	}

	report := &models.Report{
		CallsMade:            r.CallsMade,
		CallsTarget:          r.CallsPlanned,
		Completion:           r.CallCompletion,
		ProspectsCount:       prospectsCount,
		Prospects:            prospects,
		MeetingsBooked:       r.MeetingsBooked,
		TotalExpectedRevenue: r.TotalExpectedRevenue,
		Closures:             []models.Closure{},
		Feedback:             r.Feedback,
		Date:                 date,
		DateStr:              keys.Day,
		WeekStr:              keys.Week,
		MonthStr:             keys.Month,
		Year:                 date.Year(),
		Month:                int(date.Month()),
		Day:                  date.Day(),
		WeekNumber:           keys.WeekNumber,
		CreatedAt:            date,
		UpdatedAt:            now,
	}
	if err := s.reports.Set(ctx, r.UserID, keys.Day, report); err != nil {
		return err
	}

	if r.CommitmentID != "" {
		commitment, err := s.commitments.Get(ctx, r.UserID, database.PeriodDaily, keys.Day)
		if err != nil {
			return err
		}
		if commitment != nil {
			status := models.StatusMissed
			if r.CallsMade >= commitment.Target {
				status = models.StatusAchieved
			}
			err := s.commitments.Update(ctx, r.UserID, database.PeriodDaily, keys.Day, map[string]any{
				"achieved":  r.CallsMade,
				"status":    status,
				"updatedAt": now,
			})
			if err != nil {
				return err
			}
		}
	}

	extra := overage(r.CallsMade, r.CallsPlanned)
	seedTasks := 0
	if r.CallsPlanned > 0 && r.CallsMade >= r.CallsPlanned {
		seedTasks = 1
	}

	weekStart, weekEnd := periods.CalendarWeekBounds(date)
	_, err := applyRollup(ctx, s.stats, r.UserID, database.StatsWeekly, keys.Week, rollupChange{
		tasks: 1,
		extra: extra,
		seed: models.StatsRollup{
			TasksCompleted: seedTasks, ExtraTasks: extra,
			StartDate: weekStart, EndDate: weekEnd, CreatedAt: date,
		},
	}, now)
	if err != nil {
		return err
	}

	monthStart, monthEnd := periods.MonthBounds(date)
	_, err = applyRollup(ctx, s.stats, r.UserID, database.StatsMonthly, keys.Month, rollupChange{
		tasks: 1,
		extra: extra,
		seed: models.StatsRollup{
			TasksCompleted: seedTasks, ExtraTasks: extra,
			StartDate: monthStart, EndDate: monthEnd, CreatedAt: date,
		},
	}, now)
	return err
}

func (s *migrationService) migrateUserStats(ctx context.Context, log *MigrationLog) (int, int, error) {
	entries, err := s.legacy.GetUserStats(ctx)
	if err != nil {
		return 0, 0, err
	}

	now := s.cal.Now()
	keys := periods.KeysFor(now)
	weekStart, weekEnd := periods.CalendarWeekBounds(now)
	monthStart, monthEnd := periods.MonthBounds(now)

	processed := 0
	for _, e := range entries {
		uid := e.ID
		targets := []struct {
			kind, key  string
			start, end time.Time
		}{
			{database.StatsWeekly, keys.Week, weekStart, weekEnd},
			{database.StatsMonthly, keys.Month, monthStart, monthEnd},
		}
		for _, t := range targets {
			err := s.stats.Update(ctx, uid, t.kind, t.key, map[string]any{
				"tasksCompleted": e.Value.CompletedCommitments,
				"extraTasks":     e.Value.LastWeekCalls,
				"startDate":      t.start,
				"endDate":        t.end,
				"createdAt":      now,
				"updatedAt":      now,
			})
			if err != nil {
				return processed, 0, fmt.Errorf("user stats %s: %w", uid, err)
			}
		}
		processed++
		log.Info(StageUserStats, fmt.Sprintf("migrated user stats for user %s", uid))
	}
	return processed, 0, nil
}
