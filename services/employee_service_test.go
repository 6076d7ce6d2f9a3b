package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"salestrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEmployeeListAndFilter(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	env.signUp(t, "zed@example.com", "Zed", models.RoleEmployee)
	env.signUp(t, "amy@example.com", "Amy", models.RoleManager)
	env.signUp(t, "bob@example.com", "Bob", models.RoleEmployee)
	ctx := context.Background()

	all, err := env.employees.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Amy", "Bob", "Zed"}, []string{all[0].Name, all[1].Name, all[2].Name})

	employees, err := env.employees.List(ctx, models.RoleEmployee)
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

func TestEmployeeCreateAndDetail(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()

	user, err := env.employees.Create(ctx, &models.CreateEmployeeRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "Newbie",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)

	env.commit(t, user.UID, 10)
	env.report(t, user.UID, 12)

	detail, err := env.employees.Get(ctx, user.UID)
	require.NoError(t, err)
	assert.Equal(t, "Newbie", detail.User.Name)
	require.Len(t, detail.Commitments, 1)
	assert.Equal(t, models.StatusAchieved, detail.Commitments[0].Status)
	require.Len(t, detail.Reports, 1)
	assert.Equal(t, 12, detail.Reports[0].CallsMade)

	_, err = env.employees.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeUpdates(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	user := env.signUp(t, "ada@example.com", "Ada", models.RoleEmployee)
	ctx := context.Background()

	updated, err := env.employees.UpdateRole(ctx, user.UID, models.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, updated.Role)

	updated, err = env.employees.SetActive(ctx, user.UID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, models.RoleManager, updated.Role)

	before := env.store.Len()
	_, err = env.employees.UpdateRole(ctx, "ghost", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.employees.SetActive(ctx, "ghost", true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, env.store.Len(), "unknown ids must not create documents")
}

func TestEmployeeOverview(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()
	ada := env.signUp(t, "ada@example.com", "Ada", models.RoleEmployee)
	bob := env.signUp(t, "bob@example.com", "Bob", models.RoleEmployee)
	_, err := env.employees.SetActive(ctx, bob.UID, false)
	require.NoError(t, err)

	require.NoError(t, env.store.Set(ctx, "prospects/p1", map[string]any{"name": "Acme"}))
	require.NoError(t, env.store.Set(ctx, "prospects/p2", map[string]any{"name": "Globex"}))
	require.NoError(t, env.store.Set(ctx, "meetings/m1", map[string]any{"type": "online"}))
	require.NoError(t, env.store.Set(ctx, "closures/c1", models.ClosureRecord{Amount: 1200.5}))
	require.NoError(t, env.store.Set(ctx, "closures/c2", models.ClosureRecord{Amount: 300}))

	for hour := 10; hour < 16; hour++ {
		env.clock.Set(day(2024, time.January, 10, hour))
		require.NoError(t, env.admin.RecordActivity(ctx, &models.Activity{
			ID:          string(rune('a' + hour - 10)),
			Type:        models.ActivityCommitmentSubmitted,
			Description: "did something",
			UserID:      ada.UID,
			Timestamp:   env.clock.Now(),
		}))
	}
	require.NoError(t, env.admin.RecordActivity(ctx, &models.Activity{
		ID:        "z",
		Type:      models.ActivityReportSubmitted,
		UserID:    "ghost",
		Timestamp: day(2024, time.January, 10, 20),
	}))

	overview, err := env.employees.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalEmployees)
	assert.Equal(t, 1, overview.ActiveEmployees)
	assert.Equal(t, 2, overview.TotalProspects)
	assert.Equal(t, 1, overview.TotalMeetings)
	assert.InDelta(t, 1500.5, overview.TotalRevenue, 0.001)

	require.Len(t, overview.RecentActivities, 5)
	assert.Equal(t, "z", overview.RecentActivities[0].ID)
	assert.Equal(t, "Unknown User", overview.RecentActivities[0].UserName)
	assert.Equal(t, "f", overview.RecentActivities[1].ID)
	assert.Equal(t, "Ada", overview.RecentActivities[1].UserName)
	assert.Equal(t, "c", overview.RecentActivities[4].ID)
}

func TestExportEmployeeReports(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 9, 9))
	ctx := context.Background()
	user := env.signUp(t, "ada@example.com", "Ada Lovelace", models.RoleEmployee)

	env.report(t, user.UID, 4)
	env.clock.Set(day(2024, time.January, 10, 9))
	env.commit(t, user.UID, 20)
	env.report(t, user.UID, 25)

	data, filename, err := env.export.EmployeeReports(ctx, user.UID)
	require.NoError(t, err)
	assert.Equal(t, "Ada-Lovelace-reports.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reports")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Feedback", rows[0][11])
	assert.Equal(t, []string{"2024-01-10", "2024-W02", "20", "25"}, rows[1][:4])
	assert.Equal(t, models.StatusAchieved, rows[1][5])
	assert.Equal(t, "2024-01-09", rows[2][0])
	assert.Equal(t, "no commitment", rows[2][5])
}

func TestExportUnknownEmployee(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))

	_, _, err := env.export.EmployeeReports(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportSanitizesFilename(t *testing.T) {
	assert.Equal(t, "Jose-Garcia", sanitizeFilename("Jose Garcia!"))
	assert.Equal(t, "employee", sanitizeFilename("../"))
	assert.Equal(t, "a_b-c", sanitizeFilename("a_b c"))
}
