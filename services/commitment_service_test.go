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

func TestSubmitDailyCommitmentWritesAllPeriods(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()

	c, err := env.commitmentSvc.SubmitDaily(ctx, "u1", &models.CommitmentRequest{
		CallsToBeMade: 20,
		ExpectedClosures: []models.ExpectedClosure{
			{CustomerName: "Acme", ExpectedRevenue: 1500},
			{CustomerName: "Globex", ExpectedRevenue: 500},
		},
		ExpectedMeetings:  []models.ExpectedMeeting{{ProspectName: "Initech", Type: "online"}},
		ExpectedProspects: models.ExpectedProspects{Total: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-10", c.Date)
	assert.Equal(t, 20, c.Target)
	assert.Equal(t, 0, c.Achieved)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, 2, c.WeekNumber)
	assert.Equal(t, 2, c.ExpectedClosureCount)
	assert.Equal(t, 2000.0, c.TotalExpectedRevenue)
	assert.Equal(t, int(time.Wednesday), c.DayOfWeek)

	for _, p := range []struct{ period, key string }{
		{database.PeriodDaily, "2024-01-10"},
		{database.PeriodWeekly, "2024-W02"},
		{database.PeriodMonthly, "2024-01"},
	} {
		stored, err := env.commitments.Get(ctx, "u1", p.period, p.key)
		require.NoError(t, err)
		require.NotNil(t, stored, p.period)
		assert.Equal(t, 20, stored.Target, p.period)
		assert.Equal(t, 4, stored.ExpectedProspects.Total, p.period)
	}
}

func TestSubmitDailyCommitmentRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()

	env.commit(t, "u1", 20)
	docsAfterFirst := env.store.Len()

	env.clock.Set(day(2024, time.January, 10, 17))
	_, err := env.commitmentSvc.SubmitDaily(ctx, "u1", &models.CommitmentRequest{CallsToBeMade: 99})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, docsAfterFirst, env.store.Len())

	stored, err := env.commitmentSvc.GetDaily(ctx, "u1", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 20, stored.Target)
}

func TestSubmitDailyCommitmentNextDayAllowed(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	env.commit(t, "u1", 20)

	env.clock.Set(day(2024, time.January, 11, 9))
	c := env.commit(t, "u1", 15)
	assert.Equal(t, "2024-01-11", c.Date)

	weekly, err := env.commitments.Get(context.Background(), "u1", database.PeriodWeekly, "2024-W02")
	require.NoError(t, err)
	assert.Equal(t, 15, weekly.Target, "weekly copy is a snapshot of the latest day")
}

func TestGetDailyMissingIsEmpty(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))

	c, err := env.commitmentSvc.GetToday(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestListDailyCommitments(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 8, 9))
	env.commit(t, "u1", 10)
	env.report(t, "u1", 12)

	env.clock.Set(day(2024, time.January, 9, 9))
	env.commit(t, "u1", 11)

	list, err := env.commitmentSvc.ListDaily(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-01-09", list[0].Date)
	assert.False(t, list[0].ReportFiled)
	assert.Equal(t, "2024-01-08", list[1].Date)
	assert.True(t, list[1].ReportFiled)
	assert.Equal(t, models.StatusAchieved, list[1].Status)
}

func TestGetDay(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	env.commit(t, "u1", 20)
	env.report(t, "u1", 5)

	record, err := env.commitmentSvc.GetDay(context.Background(), "u1", "2024-01-10")
	require.NoError(t, err)
	require.NotNil(t, record.Commitment)
	require.NotNil(t, record.Report)
	assert.Equal(t, models.StatusMissed, record.Commitment.Status)
	assert.Equal(t, 5, record.Report.CallsMade)

	empty, err := env.commitmentSvc.GetDay(context.Background(), "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Nil(t, empty.Commitment)
	assert.Nil(t, empty.Report)
}

func TestCommitmentRecordsActivity(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	env.commit(t, "u1", 20)

	activities, err := env.admin.GetActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, models.ActivityCommitmentSubmitted, activities[0].Type)
	assert.Equal(t, "u1", activities[0].UserID)
}
