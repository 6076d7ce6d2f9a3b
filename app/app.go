package app

import (
	"net/http"
	"time"

	"salestrack/database"
	"salestrack/handlers"
	"salestrack/mail"
	repository "salestrack/repositories"
	"salestrack/routes"
	service "salestrack/services"

	"go.uber.org/zap"
)

type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	ResetURL       string
	HashCost       int
	Location       *time.Location
	AllowedOrigins []string
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Mailer mail.Sender
}

// App is the wired service graph over one document store.
type App struct {
	Handler   http.Handler
	Auth      service.AuthService
	Employees service.EmployeeService
	Migration service.MigrationService
}

func New(store database.DocumentStore, opts Options, logger *zap.Logger) *App {
	cal := service.NewCalendar(opts.Clock, opts.Location)
	mailer := opts.Mailer
	if mailer == nil {
		mailer = mail.NewLogSender(logger)
	}

	users := repository.NewUserRepository(store)
	credentials := repository.NewCredentialRepository(store)
	commitments := repository.NewCommitmentRepository(store)
	reports := repository.NewReportRepository(store)
	prospects := repository.NewProspectRepository(store)
	stats := repository.NewStatsRepository(store)
	admin := repository.NewAdminRepository(store)
	legacy := repository.NewLegacyRepository(store)

	authService := service.NewAuthService(users, credentials, stats, mailer, service.AuthOptions{
		JWTSecret: opts.JWTSecret,
		TokenTTL:  opts.TokenTTL,
		ResetURL:  opts.ResetURL,
		HashCost:  opts.HashCost,
	}, cal, logger.Named("auth"))
	commitmentService := service.NewCommitmentService(commitments, reports, admin, cal, logger.Named("commitments"))
	reportService := service.NewReportService(reports, commitments, stats, prospects, admin, cal, logger.Named("reports"))
	prospectService := service.NewProspectService(prospects, cal, logger.Named("prospects"))
	announcementService := service.NewAnnouncementService(admin, cal, logger.Named("announcements"))
	dashboardService := service.NewDashboardService(users, commitments, stats, announcementService, cal, logger.Named("dashboard"))
	employeeService := service.NewEmployeeService(users, commitmentService, reportService, authService, admin, logger.Named("employees"))
	migrationService := service.NewMigrationService(legacy, users, commitments, reports, stats, cal)
	exportService := service.NewExportService(users, reports, commitments, logger.Named("export"))

	httpLogger := logger.Named("http")
	handler := routes.SetupRoutes(routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, httpLogger),
		Commitments: handlers.NewCommitmentHandler(commitmentService, httpLogger),
		Reports:     handlers.NewReportHandler(reportService, httpLogger),
		Prospects:   handlers.NewProspectHandler(prospectService, httpLogger),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, announcementService, httpLogger),
		Admin:       handlers.NewAdminHandler(employeeService, announcementService, exportService, httpLogger),
		Migration:   handlers.NewMigrationHandler(migrationService, opts.AllowedOrigins, logger.Named("migration")),
		Health:      handlers.NewHealthHandler(store, httpLogger),
	}, routes.Options{
		Tokens:         authService,
		Users:          authService,
		AllowedOrigins: opts.AllowedOrigins,
	})

	return &App{
		Handler:   handler,
		Auth:      authService,
		Employees: employeeService,
		Migration: migrationService,
	}
}
