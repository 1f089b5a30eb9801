package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/netreply/attendance-backend-go/internal/config"
	"github.com/netreply/attendance-backend-go/internal/handler/http/middleware"
	"github.com/netreply/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	Report       ReportHandler
	Dashboard    DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			if cfg.OAuth2Google.Enabled() {
				r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
				r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			}
		})

		// SSE stream authenticates via a short-lived query token instead of
		// the Authorization header.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMe)
				r.Get("/me/reports", h.Employee.ListMyReports)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/titles", func(r chi.Router) {
				r.Get("/", h.Employee.ListTitles)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Employee.CreateTitle)
					r.Put("/{id}", h.Employee.UpdateTitle)
					r.Delete("/{id}", h.Employee.DeleteTitle)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", h.Attendance.Record)
				r.Get("/my", h.Attendance.MyAttendance)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/my", h.Leave.GetMyRequests)
				r.Get("/pending", h.Leave.PendingApprovals)
				r.Get("/{id}", h.Leave.GetRequest)
				r.Post("/{id}/approve", h.Leave.ApproveRequest)
				r.Post("/{id}/reject", h.Leave.RejectRequest)
				r.Post("/{id}/cancel", h.Leave.CancelRequest)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/{id}/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})

			r.Get("/dashboard", h.Dashboard.Summary)

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", h.Report.Calendar)
				r.Get("/attendance", h.Report.AttendanceCalendar)
				r.Get("/leaves", h.Report.LeaveCalendar)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Route("/reports", func(r chi.Router) {
					r.Get("/attendance", h.Report.AttendanceReport)
					r.Get("/leaves", h.Report.LeaveReport)
				})
			})
		})
	})

	return r
}
