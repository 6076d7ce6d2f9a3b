package services

import (
	"context"
	"errors"
	"sort"

	"salestrack/database"
	"salestrack/models"
	repository "salestrack/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	leaderboardSize    = 5
	dashboardNewsCount = 3
	// upper bound on concurrent rollup reads during the leaderboard fan-out
	leaderboardFanOut = 8
)

type DashboardService interface {
	Dashboard(ctx context.Context, uid string) (*models.Dashboard, error)
	Leaderboard(ctx context.Context, uid string) ([]models.LeaderboardEntry, error)
}

type dashboardService struct {
	users         repository.UserRepository
	commitments   repository.CommitmentRepository
	stats         repository.StatsRepository
	announcements AnnouncementService
	cal           Calendar
	logger        *zap.Logger
}

func NewDashboardService(
	users repository.UserRepository,
	commitments repository.CommitmentRepository,
	stats repository.StatsRepository,
	announcements AnnouncementService,
	cal Calendar,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		users:         users,
		commitments:   commitments,
		stats:         stats,
		announcements: announcements,
		cal:           cal,
		logger:        logger,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context, uid string) (*models.Dashboard, error) {
	keys := s.cal.Today()

	today, err := s.commitments.Get(ctx, uid, database.PeriodDaily, keys.Day)
	if err != nil {
		return nil, err
	}
	weekly, err := s.stats.Get(ctx, uid, database.StatsWeekly, keys.Week)
	if err != nil {
		return nil, err
	}
	monthly, err := s.stats.Get(ctx, uid, database.StatsMonthly, keys.Month)
	if err != nil {
		return nil, err
	}
	leaderboard, err := s.Leaderboard(ctx, uid)
	if err != nil {
		return nil, err
	}
	news, err := s.announcements.Latest(ctx, dashboardNewsCount)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		TodayCommitment: today,
		Weekly:          periodStats(keys.Week, weekly),
		Monthly:         periodStats(keys.Month, monthly),
		Leaderboard:     leaderboard,
		Announcements:   news,
	}, nil
}

func periodStats(key string, rollup *models.StatsRollup) models.PeriodStats {
	stats := models.PeriodStats{Key: key}
	if rollup != nil {
		stats.TasksCompleted = rollup.TasksCompleted
		stats.ExtraTasks = rollup.ExtraTasks
	}
	stats.TotalCompletedTasks = stats.TasksCompleted + stats.ExtraTasks
	return stats
}

// Leaderboard ranks the current week. Active admins and managers see the top
// performers across all users; everyone else sees only their own rollup.
// The role is read from the stored user, not from the token.
func (s *dashboardService) Leaderboard(ctx context.Context, uid string) ([]models.LeaderboardEntry, error) {
	week := s.cal.Today().Week

	caller, err := s.users.GetByID(ctx, uid)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	if caller == nil || !caller.IsActive || !models.IsPrivileged(caller.Role) {
		rollup, err := s.stats.Get(ctx, uid, database.StatsWeekly, week)
		if err != nil {
			return nil, err
		}
		if rollup == nil {
			return []models.LeaderboardEntry{}, nil
		}
		name := ""
		if caller != nil {
			name = caller.Name
		}
		return []models.LeaderboardEntry{newLeaderboardEntry(uid, name, rollup, uid)}, nil
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rollups := make([]*models.StatsRollup, len(users))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(leaderboardFanOut)
	for i, user := range users {
		eg.Go(func() error {
			rollup, err := s.stats.Get(egCtx, user.UID, database.StatsWeekly, week)
			if err != nil {
				return err
			}
			rollups[i] = rollup
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		if rollups[i] == nil {
			continue
		}
		entries = append(entries, newLeaderboardEntry(user.UID, user.Name, rollups[i], uid))
	}

	s.logger.Debug("leaderboard computed",
		zap.String("week", week),
		zap.Int("users", len(users)),
		zap.Int("ranked", len(entries)))
	return RankLeaderboard(entries, leaderboardSize), nil
}

func newLeaderboardEntry(userID, name string, rollup *models.StatsRollup, callerID string) models.LeaderboardEntry {
	if name == "" {
		name = "Anonymous"
	}
	return models.LeaderboardEntry{
		UserID:         userID,
		Name:           name,
		TasksCompleted: rollup.TasksCompleted,
		ExtraTasks:     rollup.ExtraTasks,
		IsCurrentUser:  userID == callerID,
	}
}

// RankLeaderboard orders entries by tasksCompleted then extraTasks, both
// descending, keeping input order for ties, and returns at most limit entries.
func RankLeaderboard(entries []models.LeaderboardEntry, limit int) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TasksCompleted != ranked[j].TasksCompleted {
			return ranked[i].TasksCompleted > ranked[j].TasksCompleted
		}
		return ranked[i].ExtraTasks > ranked[j].ExtraTasks
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
