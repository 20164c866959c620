package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/handler/http/middleware"
	"github.com/sitecrew/workforce-backend/internal/pkg/jwt"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Team       TeamHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

// NewLogger returns the JSON logger shared by the request logger and the
// services, formatted with the ECS schema.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

func NewRouter(JWTService jwt.Service, logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheckIn)).Post("/", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/daily-summary/{date}", h.Attendance.DailySummary)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Put("/", h.Attendance.Update)
					r.Post("/check-out", h.Attendance.CheckOut)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Leave.Get)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/", h.Leave.Decide)
					r.Delete("/", h.Leave.Delete)
				})
			})

			r.Route("/teams", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTeamView))
				r.Get("/", h.Team.List)
				r.With(middleware.RequirePermission(user.PermissionTeamManage)).Post("/", h.Team.Assign)
				r.Get("/my-team", h.Team.MyTeam)
				r.Get("/stats/{supervisorID}", h.Team.Stats)

				// Admins or the assignment's supervisor, checked by the service
				r.Put("/{id}", h.Team.Update)
				r.Delete("/{id}", h.Team.Deactivate)
			})

			r.Route("/reports", func(r chi.Router) {
				// Every role has a dashboard
				r.Get("/dashboard-stats", h.Dashboard.GetStats)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/attendance-summary", h.Report.GetAttendanceSummary)
					r.Get("/leave-summary", h.Report.GetLeaveSummary)
					r.Get("/team-performance", h.Report.GetTeamPerformance)
				})
			})
		})
	})
	return r
}
