package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/careroster/roster-backend/internal/config"
	"github.com/careroster/roster-backend/internal/handler/http/middleware"
	"github.com/careroster/roster-backend/internal/handler/http/response"
	"github.com/careroster/roster-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Customer     CustomerHandler
	Task         TaskHandler
	Note         NoteHandler
	Notification NotificationHandler
	Timesheet    TimesheetHandler
	Report       ReportHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "roster-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// EventSource cannot send an Authorization header
		r.Get("/events/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Post("/auth/sse-token", h.Auth.SSEToken)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.Customer.List)
				r.Post("/", h.Customer.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Customer.Get)
					r.Put("/", h.Customer.Update)
					r.Delete("/", h.Customer.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.Board)
				r.Post("/", h.Task.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Task.Get)
					r.Put("/", h.Task.Update)
					r.Patch("/move", h.Task.Move)
					r.Delete("/", h.Task.Delete)
				})
			})

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", h.Note.List)
				r.Post("/", h.Note.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Note.Get)
					r.Put("/", h.Note.Update)
					r.Delete("/", h.Note.Delete)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", h.Timesheet.List)
				r.Post("/", h.Timesheet.Create)
				r.Post("/import", h.Timesheet.Import)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Timesheet.Get)
					r.Put("/", h.Timesheet.Update)
					r.Delete("/", h.Timesheet.Delete)
					r.Post("/report", h.Timesheet.Report)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", h.Report.List)
				r.Post("/", h.Report.Save)
				r.Post("/preview", h.Report.Preview)
				r.Post("/export", h.Report.ExportDraft)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Report.Get)
					r.Put("/", h.Report.Update)
					r.Delete("/", h.Report.Delete)
					r.Get("/export", h.Report.Export)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
