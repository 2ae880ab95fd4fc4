package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/shelterdesk/shelterdesk/internal/app"
	"github.com/shelterdesk/shelterdesk/internal/auth"
	"github.com/shelterdesk/shelterdesk/internal/dashboard"
	"github.com/shelterdesk/shelterdesk/internal/observability"
	"github.com/shelterdesk/shelterdesk/internal/platform/cache"
	"github.com/shelterdesk/shelterdesk/internal/platform/db"
	"github.com/shelterdesk/shelterdesk/internal/properties"
	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
	"github.com/shelterdesk/shelterdesk/internal/rentschedule/export"
	schedulehttp "github.com/shelterdesk/shelterdesk/internal/rentschedule/http"
	"github.com/shelterdesk/shelterdesk/internal/shared"
	"github.com/shelterdesk/shelterdesk/internal/view"
	"github.com/shelterdesk/shelterdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "shelterdesk_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	propertyRepo := properties.NewRepository(dbpool)
	propertyService := properties.NewService(propertyRepo)
	propertyHandler := properties.NewHandler(logger, propertyService, templates)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardService := dashboard.NewService(dashboardRepo, logger)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, templates)

	scheduleRepo := rentschedule.NewRepository(dbpool)
	scheduleCache := rentschedule.NewCache(redisClient, cfg.ScheduleCacheTTL)
	scheduleService, err := rentschedule.NewService(scheduleRepo, scheduleCache, logger)
	if err != nil {
		logger.Error("init schedule service", slog.Any("error", err))
		os.Exit(1)
	}
	pdfExporter := &export.PDFExporter{Endpoint: cfg.GotenbergURL, Client: http.DefaultClient}
	scheduleHandler := schedulehttp.NewHandler(logger, scheduleService, templates, pdfExporter)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Templates:         templates,
		SessionManager:    sessionManager,
		CSRFManager:       csrfManager,
		AuthHandler:       authHandler,
		PropertiesHandler: propertyHandler,
		DashboardHandler:  dashboardHandler,
		ScheduleHandler:   scheduleHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
