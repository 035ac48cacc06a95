package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careroster/roster-backend/internal/config"
	appHTTP "github.com/careroster/roster-backend/internal/handler/http"
	"github.com/careroster/roster-backend/internal/pkg/cron"
	"github.com/careroster/roster-backend/internal/pkg/database"
	"github.com/careroster/roster-backend/internal/pkg/jwt"
	"github.com/careroster/roster-backend/internal/pkg/sse"
	"github.com/careroster/roster-backend/internal/repository/postgresql"
	serviceAuth "github.com/careroster/roster-backend/internal/service/auth"
	customerService "github.com/careroster/roster-backend/internal/service/customer"
	employeeService "github.com/careroster/roster-backend/internal/service/employee"
	noteService "github.com/careroster/roster-backend/internal/service/note"
	notificationService "github.com/careroster/roster-backend/internal/service/notification"
	taskService "github.com/careroster/roster-backend/internal/service/task"
	timesheetService "github.com/careroster/roster-backend/internal/service/timesheet"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	noteRepo := postgresql.NewNoteRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.JWT.SSEExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notificationSvc.Stop()

	authSvc := serviceAuth.NewAuthService(cfg.Admin, JWTService, refreshTokenRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	customerSvc := customerService.NewCustomerService(customerRepo)
	taskSvc := taskService.NewTaskService(taskRepo)
	noteSvc := noteService.NewNoteService(noteRepo, notificationSvc, cfg.Admin.Username)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, reportRepo, employeeRepo)

	scheduler := cron.NewScheduler(ctx)
	cron.NewReminderJobs(noteSvc, cfg.Reminder.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Customer:     appHTTP.NewCustomerHandler(customerSvc),
		Task:         appHTTP.NewTaskHandler(taskSvc),
		Note:         appHTTP.NewNoteHandler(noteSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService),
		Timesheet:    appHTTP.NewTimesheetHandler(timesheetSvc),
		Report:       appHTTP.NewReportHandler(timesheetSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open event streams end when the signal context is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
