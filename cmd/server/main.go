package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	appsync "github.com/dealersync/backend/internal/application/sync"
	"github.com/dealersync/backend/internal/infrastructure/auth"
	"github.com/dealersync/backend/internal/infrastructure/config"
	"github.com/dealersync/backend/internal/infrastructure/crypto"
	"github.com/dealersync/backend/internal/infrastructure/erp"
	"github.com/dealersync/backend/internal/infrastructure/logger"
	"github.com/dealersync/backend/internal/infrastructure/persistence"
	"github.com/dealersync/backend/internal/infrastructure/scheduler"
	"github.com/dealersync/backend/internal/interfaces/http/handler"
	"github.com/dealersync/backend/internal/interfaces/http/middleware"
	"github.com/dealersync/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting DealerSync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// ---------------------------------------------------------------------
	// Infrastructure
	// ---------------------------------------------------------------------

	gormLogLevel := gormlogger.Warn
	if cfg.App.Env == "development" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	connRepo := persistence.NewGormTenantConnectionRepository(db.DB)
	jobRepo := persistence.NewGormSyncJobRepository(db.DB)
	periodRepo := persistence.NewGormReportingPeriodRepository(db.DB)
	dfRepo := persistence.NewGormDepartmentFinancialRepository(db.DB)
	eaRepo := persistence.NewGormExpenseAllocationRepository(db.DB)
	omRepo := persistence.NewGormOperationalMetricRepository(db.DB)

	cipher, err := crypto.NewAESCipher(cfg.Crypto.CredentialSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize credential cipher: %w", err)
	}

	resolver := erp.NewColumnResolver(log)
	factory := erp.NewSQLAdapterFactory(resolver, log)

	// ---------------------------------------------------------------------
	// Application services
	// ---------------------------------------------------------------------

	orchestrator := appsync.NewOrchestrator(connRepo, jobRepo, periodRepo, dfRepo, eaRepo, omRepo, factory, cipher, log)
	connectionService := appsync.NewConnectionService(connRepo, factory, cipher, log)
	jwtService := auth.NewJWTService(cfg.JWT)

	syncScheduler, err := scheduler.NewSyncScheduler(scheduler.Config{
		Enabled:      cfg.Scheduler.Enabled,
		SyncInterval: cfg.Scheduler.SyncInterval,
		JobTimeout:   cfg.Scheduler.JobTimeout,
		LookbackDays: cfg.Scheduler.LookbackDays,
	}, orchestrator, connRepo, log)
	if err != nil {
		return fmt.Errorf("failed to create sync scheduler: %w", err)
	}
	if err := syncScheduler.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start sync scheduler: %w", err)
	}

	// ---------------------------------------------------------------------
	// HTTP server
	// ---------------------------------------------------------------------

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))
	engine.Use(middleware.JWTAuthWithConfig(middleware.AuthConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/api/v1/health"},
		Logger:     log,
	}))

	router.NewRouter(engine).
		Register(handler.NewSyncHandler(orchestrator, jobRepo, connRepo)).
		Register(handler.NewConnectionHandler(connectionService)).
		Register(handler.NewSystemHandler(db)).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := syncScheduler.Stop(ctx); err != nil {
		log.Error("Failed to stop sync scheduler", zap.Error(err))
	}
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
