package services

import (
	"context"
	"testing"
	"time"

	"salestrack/database"
	"salestrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLeaderboardOrder(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "a", TasksCompleted: 5, ExtraTasks: 2},
		{UserID: "b", TasksCompleted: 5, ExtraTasks: 3},
		{UserID: "c", TasksCompleted: 4, ExtraTasks: 9},
	}

	ranked := RankLeaderboard(entries, 5)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{ranked[0].UserID, ranked[1].UserID, ranked[2].UserID})
	assert.Equal(t, "a", entries[0].UserID, "input is not reordered")
}

func TestRankLeaderboardStableAndLimited(t *testing.T) {
	var entries []models.LeaderboardEntry
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		entries = append(entries, models.LeaderboardEntry{UserID: id, TasksCompleted: 1, ExtraTasks: 1})
	}

	ranked := RankLeaderboard(entries, 5)
	require.Len(t, ranked, 5)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, id, ranked[i].UserID)
	}
}

func seedWeekly(t *testing.T, env *testEnv, uid string, tasks, extra int) {
	t.Helper()
	require.NoError(t, env.stats.Set(context.Background(), uid, database.StatsWeekly, env.cal.Today().Week, &models.StatsRollup{
		TasksCompleted: tasks,
		ExtraTasks:     extra,
	}))
}

func seedUser(t *testing.T, env *testEnv, uid, name, role string) {
	t.Helper()
	require.NoError(t, env.users.Create(context.Background(), &models.User{UID: uid, Name: name, Role: role, IsActive: true}))
}

func TestLeaderboardForManager(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	seedUser(t, env, "boss", "Boss", models.RoleManager)
	seedUser(t, env, "u1", "Ada", models.RoleEmployee)
	seedUser(t, env, "u2", "", models.RoleEmployee)
	seedUser(t, env, "u3", "Grace", models.RoleEmployee)
	seedUser(t, env, "u4", "Idle", models.RoleEmployee)
	seedWeekly(t, env, "u1", 5, 2)
	seedWeekly(t, env, "u2", 5, 3)
	seedWeekly(t, env, "u3", 4, 9)
	seedWeekly(t, env, "boss", 1, 0)

	board, err := env.dashboard.Leaderboard(context.Background(), "boss")
	require.NoError(t, err)

	require.Len(t, board, 4, "users without a rollup are left out")
	assert.Equal(t, "u2", board[0].UserID)
	assert.Equal(t, "Anonymous", board[0].Name)
	assert.Equal(t, "u1", board[1].UserID)
	assert.Equal(t, "u3", board[2].UserID)
	assert.Equal(t, "boss", board[3].UserID)
	assert.True(t, board[3].IsCurrentUser)
	assert.False(t, board[0].IsCurrentUser)
}

func TestLeaderboardForEmployeeIsOwnRollup(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	seedUser(t, env, "u1", "Ada", models.RoleEmployee)
	seedUser(t, env, "u2", "Grace", models.RoleEmployee)
	seedWeekly(t, env, "u1", 2, 1)
	seedWeekly(t, env, "u2", 9, 9)

	board, err := env.dashboard.Leaderboard(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "u1", board[0].UserID)
	assert.Equal(t, "Ada", board[0].Name)
	assert.True(t, board[0].IsCurrentUser)

	empty, err := env.dashboard.Leaderboard(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLeaderboardFollowsStoredRole(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()
	seedUser(t, env, "boss", "Boss", models.RoleManager)
	seedUser(t, env, "u1", "Ada", models.RoleEmployee)
	seedWeekly(t, env, "boss", 1, 0)
	seedWeekly(t, env, "u1", 5, 2)

	board, err := env.dashboard.Leaderboard(ctx, "boss")
	require.NoError(t, err)
	assert.Len(t, board, 2)

	require.NoError(t, env.users.Update(ctx, "boss", map[string]any{"role": models.RoleEmployee}))
	board, err = env.dashboard.Leaderboard(ctx, "boss")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "boss", board[0].UserID)

	require.NoError(t, env.users.Update(ctx, "boss", map[string]any{"role": models.RoleManager, "isActive": false}))
	board, err = env.dashboard.Leaderboard(ctx, "boss")
	require.NoError(t, err)
	assert.Len(t, board, 1)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()
	user := env.signUp(t, "ada@example.com", "Ada", models.RoleEmployee)
	env.commit(t, user.UID, 20)
	env.report(t, user.UID, 25)

	for i := 0; i < 4; i++ {
		env.clock.Set(day(2024, time.January, 10, 10+i))
		_, err := env.announcements.Create(ctx, "admin", &models.AnnouncementRequest{Title: string(rune('A' + i)), Content: "x"})
		require.NoError(t, err)
	}

	dash, err := env.dashboard.Dashboard(ctx, user.UID)
	require.NoError(t, err)

	require.NotNil(t, dash.TodayCommitment)
	assert.Equal(t, models.StatusAchieved, dash.TodayCommitment.Status)
	assert.Equal(t, models.PeriodStats{Key: "2024-W02", TasksCompleted: 1, ExtraTasks: 5, TotalCompletedTasks: 6}, dash.Weekly)
	assert.Equal(t, models.PeriodStats{Key: "2024-01", TasksCompleted: 1, ExtraTasks: 5, TotalCompletedTasks: 6}, dash.Monthly)
	require.Len(t, dash.Leaderboard, 1)

	require.Len(t, dash.Announcements, 3)
	assert.Equal(t, "D", dash.Announcements[0].Title)
	assert.Equal(t, "B", dash.Announcements[2].Title)
}

func TestDashboardEmptyState(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))

	dash, err := env.dashboard.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, dash.TodayCommitment)
	assert.Equal(t, 0, dash.Weekly.TotalCompletedTasks)
	assert.Empty(t, dash.Leaderboard)
	assert.Empty(t, dash.Announcements)
}
