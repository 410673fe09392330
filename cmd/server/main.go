package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"expiryx-backend/internal/config"
	"expiryx-backend/internal/repository/postgres"
	"expiryx-backend/internal/scheduler"
	"expiryx-backend/internal/server/handlers"
	"expiryx-backend/internal/server/router"
	expirysvc "expiryx-backend/internal/service/expiry"
	"expiryx-backend/internal/service/notification"
	webhookclient "expiryx-backend/pkg/clients/webhook"
	"expiryx-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := postgres.Open(cfg.Database.DSN)
	if err != nil {
		baseLogger.Fatal("failed to init postgres store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			baseLogger.Error("failed to close postgres connection", zap.Error(err))
		}
	}()

	var notifier notification.Notifier
	if cfg.Alerts.WebhookURL != "" {
		notifier = notification.NewWebhookNotifier(
			webhookclient.NewClient(cfg.Alerts.WebhookURL),
			baseLogger.Named("notifier.webhook"),
		)
		baseLogger.Info("webhook notifier enabled", zap.String("url", cfg.Alerts.WebhookURL))
	} else {
		notifier = notification.NewLogNotifier(baseLogger.Named("notifier.log"))
		baseLogger.Warn("alert webhook url missing, notifications are logged only")
	}

	expiryService, err := expirysvc.NewService(store, notifier, cfg.Alerts, cfg.Location(), baseLogger.Named("svc.expiry"))
	if err != nil {
		baseLogger.Fatal("failed to init expiry service", zap.Error(err))
	}

	jobsHandler := handlers.NewJobsHandler(expiryService, baseLogger.Named("handlers.jobs"))
	engine := router.New(jobsHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Schedules, expiryService, cfg.Location(), baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
