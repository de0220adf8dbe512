package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/config"
	"github.com/mahameru/inventory/internal/repository/mongodb"
	"github.com/mahameru/inventory/internal/scheduler"
	"github.com/mahameru/inventory/internal/server/handlers"
	"github.com/mahameru/inventory/internal/server/router"
	authsvc "github.com/mahameru/inventory/internal/service/auth"
	inventorysvc "github.com/mahameru/inventory/internal/service/inventory"
	reportingsvc "github.com/mahameru/inventory/internal/service/reporting"
	"github.com/mahameru/inventory/pkg/clients/notify"
	"github.com/mahameru/inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	materials := store.Materials()
	transactions := store.Transactions()
	storageCosts := store.StorageCosts()

	invSvc := inventorysvc.NewService(materials, transactions, storageCosts, baseLogger.Named("svc.inventory"))
	reportSvc := reportingsvc.NewService(materials, transactions, storageCosts, baseLogger.Named("svc.reporting"))
	authSvc := authsvc.NewService(store.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))

	if err := authSvc.SeedDefaultUsers(context.Background(), cfg.Auth.DefaultPassword); err != nil {
		baseLogger.Fatal("failed to seed default users", zap.Error(err))
	}

	engine := router.New(router.Handlers{
		Auth:         handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Materials:    handlers.NewMaterialHandler(materials, invSvc, baseLogger.Named("handlers.materials")),
		Transactions: handlers.NewTransactionHandler(invSvc, transactions, baseLogger.Named("handlers.transactions")),
		StorageCosts: handlers.NewStorageCostHandler(materials, storageCosts, baseLogger.Named("handlers.storagecosts")),
		Reports:      handlers.NewReportHandler(reportSvc, baseLogger.Named("handlers.reports")),
	}, authSvc, baseLogger.Named("router"))

	var notifier notify.Client
	if cfg.Alerts.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("low stock webhook alerts enabled")
	} else {
		baseLogger.Warn("ALERT_WEBHOOK_URL missing, low stock alerts are log-only")
	}

	sched := scheduler.NewScheduler(cfg.Alerts, invSvc, notifier, baseLogger.Named("scheduler"))
	sched.Start()
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
