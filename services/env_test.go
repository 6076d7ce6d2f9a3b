package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"salestrack/database"
	"salestrack/models"
	repository "salestrack/repositories"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// testClock is a settable clock shared by every service of a testEnv.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type sentMail struct {
	to, name, link string
}

type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *captureMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, name: name, link: link})
	return nil
}

type testEnv struct {
	store  *database.MemoryStore
	clock  *testClock
	cal    Calendar
	mailer *captureMailer

	users       repository.UserRepository
	credentials repository.CredentialRepository
	commitments repository.CommitmentRepository
	reports     repository.ReportRepository
	prospects   repository.ProspectRepository
	stats       repository.StatsRepository
	admin       repository.AdminRepository
	legacy      repository.LegacyRepository

	auth          AuthService
	commitmentSvc CommitmentService
	reportSvc     ReportService
	prospectSvc   ProspectService
	announcements AnnouncementService
	dashboard     DashboardService
	employees     EmployeeService
	migration     MigrationService
	export        ExportService
}

func day(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, database.NewMemoryStore(), now)
}

func newTestEnvWithStore(t *testing.T, store database.DocumentStore, now time.Time) *testEnv {
	t.Helper()

	clock := &testClock{now: now}
	cal := NewCalendar(clock.Now, time.UTC)
	logger := zap.NewNop()

	env := &testEnv{
		clock:       clock,
		cal:         cal,
		mailer:      &captureMailer{},
		users:       repository.NewUserRepository(store),
		credentials: repository.NewCredentialRepository(store),
		commitments: repository.NewCommitmentRepository(store),
		reports:     repository.NewReportRepository(store),
		prospects:   repository.NewProspectRepository(store),
		stats:       repository.NewStatsRepository(store),
		admin:       repository.NewAdminRepository(store),
		legacy:      repository.NewLegacyRepository(store),
	}
	if mem, ok := store.(*database.MemoryStore); ok {
		env.store = mem
	}

	env.auth = NewAuthService(env.users, env.credentials, env.stats, env.mailer, AuthOptions{
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		ResetURL:  "http://localhost:3000/reset-password",
		HashCost:  bcrypt.MinCost,
	}, cal, logger)
	env.commitmentSvc = NewCommitmentService(env.commitments, env.reports, env.admin, cal, logger)
	env.reportSvc = NewReportService(env.reports, env.commitments, env.stats, env.prospects, env.admin, cal, logger)
	env.prospectSvc = NewProspectService(env.prospects, cal, logger)
	env.announcements = NewAnnouncementService(env.admin, cal, logger)
	env.dashboard = NewDashboardService(env.users, env.commitments, env.stats, env.announcements, cal, logger)
	env.employees = NewEmployeeService(env.users, env.commitmentSvc, env.reportSvc, env.auth, env.admin, logger)
	env.migration = NewMigrationService(env.legacy, env.users, env.commitments, env.reports, env.stats, cal)
	env.export = NewExportService(env.users, env.reports, env.commitments, logger)
	return env
}

func (e *testEnv) signUp(t *testing.T, email, name, role string) models.User {
	t.Helper()
	session, err := e.auth.SignUp(context.Background(), &models.SignUpRequest{
		Email:    email,
		Password: "secret123",
		Name:     name,
	}, role)
	require.NoError(t, err)
	return session.User
}

func (e *testEnv) commit(t *testing.T, uid string, target int) *models.Commitment {
	t.Helper()
	c, err := e.commitmentSvc.SubmitDaily(context.Background(), uid, &models.CommitmentRequest{CallsToBeMade: target})
	require.NoError(t, err)
	return c
}

func (e *testEnv) report(t *testing.T, uid string, calls int) *models.ReportSubmission {
	t.Helper()
	sub, err := e.reportSvc.SubmitDaily(context.Background(), uid, &models.ReportRequest{CallsMade: calls})
	require.NoError(t, err)
	return sub
}
