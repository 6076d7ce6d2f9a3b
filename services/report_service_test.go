package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"salestrack/database"
	"salestrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSetsCommitmentStatus(t *testing.T) {
	tests := []struct {
		name      string
		target    int
		callsMade int
		want      string
	}{
		{"below target", 20, 19, models.StatusMissed},
		{"exactly target", 20, 20, models.StatusAchieved},
		{"above target", 20, 25, models.StatusAchieved},
		{"zero target", 0, 0, models.StatusAchieved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, day(2024, time.January, 10, 9))
			env.commit(t, "u1", tt.target)

			sub := env.report(t, "u1", tt.callsMade)
			require.NotNil(t, sub.Commitment)
			assert.Equal(t, tt.want, sub.Commitment.Status)
			assert.Equal(t, tt.callsMade, sub.Commitment.Achieved)

			stored, err := env.commitmentSvc.GetDaily(context.Background(), "u1", "2024-01-10")
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)
			assert.Equal(t, tt.callsMade, stored.Achieved)
		})
	}
}

func TestReportExtraTasks(t *testing.T) {
	tests := []struct {
		name          string
		target        *int
		callsMade     int
		wantTasks     int
		wantExtra     int
		wantTarget    int
		wantCompleted float64
	}{
		{"overage counted", intPtr(20), 25, 1, 5, 20, 125},
		{"shortfall is zero", intPtr(20), 12, 1, 0, 20, 60},
		{"no commitment uses raw calls", nil, 17, 0, 17, 0, 100},
		{"zero target", intPtr(0), 3, 1, 3, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, day(2024, time.January, 10, 9))
			if tt.target != nil {
				env.commit(t, "u1", *tt.target)
			}

			sub := env.report(t, "u1", tt.callsMade)
			assert.Equal(t, tt.wantTasks, sub.Weekly.TasksCompleted)
			assert.Equal(t, tt.wantExtra, sub.Weekly.ExtraTasks)
			assert.Equal(t, tt.wantTasks, sub.Monthly.TasksCompleted)
			assert.Equal(t, tt.wantExtra, sub.Monthly.ExtraTasks)
			assert.Equal(t, tt.wantTarget, sub.Report.CallsTarget)
			assert.InDelta(t, tt.wantCompleted, sub.Report.Completion, 0.001)
			if tt.target == nil {
				assert.Nil(t, sub.Commitment)
			}

			weekly, err := env.stats.Get(context.Background(), "u1", database.StatsWeekly, "2024-W02")
			require.NoError(t, err)
			require.NotNil(t, weekly)
			assert.Equal(t, tt.wantExtra, weekly.ExtraTasks)
		})
	}
}

func TestReportRollupsAccumulateAcrossDays(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 8, 9))
	env.commit(t, "u1", 10)
	env.report(t, "u1", 14)

	env.clock.Set(day(2024, time.January, 9, 9))
	env.commit(t, "u1", 10)
	sub := env.report(t, "u1", 13)

	assert.Equal(t, 2, sub.Weekly.TasksCompleted)
	assert.Equal(t, 7, sub.Weekly.ExtraTasks)
	assert.Equal(t, 2, sub.Monthly.TasksCompleted)
	assert.Equal(t, 7, sub.Monthly.ExtraTasks)

	weekly, err := env.stats.Get(context.Background(), "u1", database.StatsWeekly, "2024-W02")
	require.NoError(t, err)
	assert.True(t, day(2024, time.January, 8, 0).Equal(weekly.StartDate), "week starts Monday")
	assert.True(t, time.Date(2024, time.January, 14, 23, 59, 59, int(999*time.Millisecond), time.UTC).Equal(weekly.EndDate))
}

func TestReportRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	env.commit(t, "u1", 20)
	env.report(t, "u1", 25)
	docs := env.store.Len()

	_, err := env.reportSvc.SubmitDaily(context.Background(), "u1", &models.ReportRequest{CallsMade: 1})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, docs, env.store.Len())

	weekly, err := env.stats.Get(context.Background(), "u1", database.StatsWeekly, "2024-W02")
	require.NoError(t, err)
	assert.Equal(t, 1, weekly.TasksCompleted)
}

func TestReportStoresProspectsMeetingsAndTotals(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	ctx := context.Background()

	sub, err := env.reportSvc.SubmitDaily(ctx, "u1", &models.ReportRequest{
		CallsMade: 8,
		Prospects: []models.ReportedProspect{
			{Name: "Acme", Contact: "555-0100", Source: "cold call"},
			{Name: "Globex", Source: "referral"},
		},
		MeetingOutcomes: []models.MeetingOutcomeInput{
			{ProspectName: "Initech", Outcome: models.OutcomeConverted, ExpectedRevenue: 1000},
			{ProspectName: "Hooli", Outcome: models.OutcomeFollowUp, ExpectedRevenue: 250},
		},
		Closures: []models.Closure{{ProspectName: "Initech", Amount: 900}, {ProspectName: "Umbrella", Amount: 100}},
		Feedback: "good day",
	})
	require.NoError(t, err)

	r := sub.Report
	assert.Equal(t, 2, r.ProspectsCount)
	assert.Equal(t, 2, r.TotalProspects)
	assert.Equal(t, 1, r.ConvertedProspects)
	assert.Equal(t, 2, r.MeetingsBooked)
	assert.Equal(t, 1250.0, r.TotalExpectedRevenue)
	assert.Equal(t, 1000.0, r.RevenueGenerated)
	assert.Equal(t, "2024-01-10", r.DateStr)
	assert.Equal(t, "2024-W02", r.WeekStr)
	assert.Equal(t, "2024-01", r.MonthStr)
	assert.Equal(t, 2, r.WeekNumber)

	prospects, err := env.prospects.GetAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, prospects, 2)
	for _, p := range prospects {
		assert.Equal(t, models.ProspectPending, p.Status)
		assert.Equal(t, "2024-01-10", p.ReportDate)
		assert.NotEmpty(t, p.ID)
	}

	meetings, err := env.reportSvc.ListMeetings(ctx, "u1", "2024-01-10")
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	for _, m := range meetings {
		assert.NotEmpty(t, m.MeetingID)
		assert.Equal(t, "u1", m.UserID)
	}
}

func TestReportTotalsIgnoreClientCounts(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))

	body := []byte(`{
		"callsMade": 3,
		"totalProspects": 40,
		"convertedProspects": 12,
		"meetingOutcomes": [
			{"prospectName": "Initech", "outcome": "converted"},
			{"prospectName": "Hooli", "outcome": "converted"},
			{"prospectName": "Umbrella", "outcome": "lost"}
		]
	}`)
	var req models.ReportRequest
	require.NoError(t, json.Unmarshal(body, &req))

	sub, err := env.reportSvc.SubmitDaily(context.Background(), "u1", &req)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.Report.TotalProspects)
	assert.Equal(t, 2, sub.Report.ConvertedProspects)
	assert.Equal(t, 3, sub.Report.MeetingsBooked)
}

func TestListDailyReports(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 9, 9))
	env.report(t, "u1", 4)

	env.clock.Set(day(2024, time.January, 10, 9))
	env.commit(t, "u1", 20)
	env.report(t, "u1", 21)

	list, err := env.reportSvc.ListDaily(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "2024-01-10", list[0].DateStr)
	require.NotNil(t, list[0].CommitmentTarget)
	assert.Equal(t, 20, *list[0].CommitmentTarget)
	assert.Equal(t, models.StatusAchieved, list[0].CommitmentStatus)

	assert.Equal(t, "2024-01-09", list[1].DateStr)
	assert.Nil(t, list[1].CommitmentTarget)
}

func TestGetDailyReportMissing(t *testing.T) {
	env := newTestEnv(t, day(2024, time.January, 10, 9))
	r, err := env.reportSvc.GetDaily(context.Background(), "u1", "2024-01-10")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func intPtr(v int) *int {
	return &v
}
