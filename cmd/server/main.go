package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmensah/signify/internal/api"
	"github.com/kmensah/signify/internal/auth"
	"github.com/kmensah/signify/internal/catalog"
	"github.com/kmensah/signify/internal/classifier"
	"github.com/kmensah/signify/internal/config"
	"github.com/kmensah/signify/internal/db"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/repository/sqlite"
	"github.com/kmensah/signify/internal/services"
	"github.com/kmensah/signify/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Signify Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl_hours=%d", cfg.TokenTTLHours)
	log.Debug("classifier_url=%s", cfg.ClassifierURL)
	log.Debug("classifier_timeout_seconds=%d", cfg.ClassifierTimeoutSeconds)
	log.Debug("retry_worker_count=%d", cfg.RetryWorkerCount)
	log.Debug("retry_queue_size=%d", cfg.RetryQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	users := sqlite.NewUserRepository(database.DB)
	lessons := sqlite.NewLessonRepository(database.DB)
	progress := sqlite.NewProgressRepository(database.DB)

	// Seed the lesson catalog
	catalogService := catalog.NewService(lessons)
	if err := catalogService.Seed(context.Background()); err != nil {
		log.Error("failed to seed lesson catalog: %v", err)
		os.Exit(1)
	}

	retryPool := worker.NewPool(cfg.RetryWorkerCount, cfg.RetryQueueSize)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	classifierClient := classifier.New(cfg.ClassifierURL, time.Duration(cfg.ClassifierTimeoutSeconds)*time.Second)

	// Services
	authService := services.NewAuthService(users, tokens)
	progressService := services.NewProgressService(progress, lessons, retryPool)
	statsService := services.NewStatsService(progress, lessons)
	classroomService := services.NewClassroomService(users, progress, authService, statsService)

	srv := &api.Server{
		Auth:       authService,
		Catalog:    catalogService,
		Progress:   progressService,
		Stats:      statsService,
		Classroom:  classroomService,
		Classifier: classifierClient,
		Tokens:     tokens,
	}

	ctx, cancel := context.WithCancel(context.Background())
	retryPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	retryPool.Stop()

	log.Info("===========================================")
	log.Info("Signify Server Stopped")
	log.Info("===========================================")
}
