package routes

import (
	"net/http"

	"salestrack/handlers"
	"salestrack/metrics"
	middleware "salestrack/middlewares"
	"salestrack/models"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Commitments *handlers.CommitmentHandler
	Reports     *handlers.ReportHandler
	Prospects   *handlers.ProspectHandler
	Dashboard   *handlers.DashboardHandler
	Admin       *handlers.AdminHandler
	Migration   *handlers.MigrationHandler
	Health      *handlers.HealthHandler
}

type Options struct {
	Tokens         middleware.TokenParser
	Users          middleware.UserLookup
	AllowedOrigins []string
}

// SetupRoutes builds the API mux. Every request passes CORS then metrics.
func SetupRoutes(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.JWTMiddleware(opts.Tokens)
	admin := func(next http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(opts.Users, models.RoleAdmin)(next))
	}
	privileged := func(next http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(opts.Users, models.RoleAdmin, models.RoleManager)(next))
	}
	user := func(next http.HandlerFunc) http.Handler {
		return authed(next)
	}

	// Public
	mux.HandleFunc("POST /api/auth/signup", h.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/password-reset", h.Auth.RequestPasswordReset)
	mux.HandleFunc("POST /api/auth/password-reset/confirm", h.Auth.ResetPassword)
	mux.HandleFunc("GET /healthz", h.Health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Any signed-in user
	mux.Handle("GET /api/auth/me", user(h.Auth.Me))
	mux.Handle("PUT /api/auth/profile", user(h.Auth.UpdateProfile))

	mux.Handle("POST /api/commitments", user(h.Commitments.SubmitDaily))
	mux.Handle("GET /api/commitments", user(h.Commitments.ListDaily))
	mux.Handle("GET /api/commitments/today", user(h.Commitments.GetToday))
	mux.Handle("GET /api/commitments/{date}", user(h.Commitments.GetDay))

	mux.Handle("POST /api/reports", user(h.Reports.SubmitDaily))
	mux.Handle("GET /api/reports", user(h.Reports.ListDaily))
	mux.Handle("GET /api/reports/{date}", user(h.Reports.GetDaily))
	mux.Handle("GET /api/reports/{date}/meetings", user(h.Reports.ListMeetings))

	mux.Handle("GET /api/prospects", user(h.Prospects.List))
	mux.Handle("POST /api/prospects", user(h.Prospects.Create))
	mux.Handle("PATCH /api/prospects/{id}/status", user(h.Prospects.UpdateStatus))

	mux.Handle("GET /api/dashboard", user(h.Dashboard.Dashboard))
	mux.Handle("GET /api/leaderboard", user(h.Dashboard.Leaderboard))
	mux.Handle("GET /api/announcements", user(h.Dashboard.Announcements))

	// Admin
	mux.Handle("POST /api/admin/announcements", admin(h.Admin.CreateAnnouncement))
	mux.Handle("GET /api/admin/overview", admin(h.Admin.Overview))
	mux.Handle("GET /api/admin/employees", admin(h.Admin.ListEmployees))
	mux.Handle("POST /api/admin/employees", admin(h.Admin.CreateEmployee))
	mux.Handle("GET /api/admin/employees/{id}", admin(h.Admin.GetEmployee))
	mux.Handle("PATCH /api/admin/employees/{id}/role", admin(h.Admin.UpdateRole))
	mux.Handle("PATCH /api/admin/employees/{id}/status", admin(h.Admin.UpdateStatus))
	mux.Handle("GET /api/admin/employees/{id}/reports/export", privileged(h.Admin.ExportReports))
	mux.Handle("POST /api/admin/migrate", admin(h.Migration.Run))
	mux.Handle("GET /api/admin/migrate/stream", admin(h.Migration.Stream))

	return middleware.CORS(opts.AllowedOrigins)(metrics.Middleware(mux))
}
