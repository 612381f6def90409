package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/bardspeak/internal/api"
	"github.com/vytor/bardspeak/internal/certificate"
	"github.com/vytor/bardspeak/internal/config"
	"github.com/vytor/bardspeak/internal/db"
	"github.com/vytor/bardspeak/internal/jobs"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/oracle"
	"github.com/vytor/bardspeak/internal/repository/sqlite"
	"github.com/vytor/bardspeak/internal/services"
	"github.com/vytor/bardspeak/internal/speech"
	"github.com/vytor/bardspeak/internal/worker"
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
	log.Info("Shakespeare Club Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("audio_dir=%s", cfg.AudioDir)
	log.Debug("cert_cache_dir=%s", cfg.CertCacheDir)
	log.Debug("attempts_per_day=%d", cfg.AttemptsPerDay)
	log.Debug("render_worker_count=%d", cfg.RenderWorkerCount)
	log.Debug("render_queue_size=%d", cfg.RenderQueueSize)

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

	if err := database.Seed(context.Background()); err != nil {
		log.Error("failed to seed database: %v", err)
		os.Exit(1)
	}

	// Optional collaborators degrade gracefully when unconfigured.
	var oracleClient oracle.Oracle
	if cfg.OracleAPIKey != "" {
		oracleClient = oracle.NewClient(cfg.OracleAPIKey, cfg.OracleBaseURL, cfg.OracleModel, cfg.OracleTimeout())
		log.Info("quality oracle enabled: model=%s", cfg.OracleModel)
	} else {
		log.Warn("ORACLE_API_KEY not set, submissions use fallback scoring")
	}

	var transcriber speech.Transcriber
	if cfg.SpeechCredentialsFile != "" {
		gt, err := speech.NewGoogleTranscriber(context.Background(), cfg.SpeechCredentialsFile, cfg.SpeechLanguage, cfg.SpeechTimeout())
		if err != nil {
			log.Warn("failed to create transcriber, audio submissions rely on client transcripts: %v", err)
		} else {
			defer gt.Close()
			transcriber = gt
			log.Info("speech transcription enabled: language=%s", cfg.SpeechLanguage)
		}
	} else {
		log.Warn("SPEECH_CREDENTIALS_FILE not set, audio submissions rely on client transcripts")
	}

	renderer, err := certificate.NewRenderer(cfg.CertFontPath)
	if err != nil {
		log.Warn("failed to create certificate renderer, downloads disabled: %v", err)
		renderer = nil
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	adminRepo := sqlite.NewAdminRepository(database.DB)
	contentRepo := sqlite.NewContentRepository(database.DB)
	completionRepo := sqlite.NewCompletionRepository(database.DB)
	quoteRepo := sqlite.NewQuoteRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)
	taskRepo := sqlite.NewTaskRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize worker pool for certificate pre-rendering
	renderPool := worker.NewPool(cfg.RenderWorkerCount, cfg.RenderQueueSize)

	// Initialize services
	certificateService := services.NewCertificateService(userRepo, completionRepo, renderer, cfg.CertCacheDir)
	jobQueue := jobs.NewWorkerQueue(renderPool, certificateService)
	userService := services.NewUserService(userRepo, completionRepo, certificateService)
	adminService := services.NewAdminService(adminRepo, statsRepo)
	contentService := services.NewContentService(contentRepo, completionRepo, quoteRepo, taskRepo, userRepo)
	statsService := services.NewStatsService(userRepo, completionRepo, quoteRepo, taskRepo, statsRepo)
	practiceService := services.NewPracticeService(
		contentRepo, completionRepo, quoteRepo, attemptRepo, userRepo,
		oracleClient, transcriber, jobQueue, cfg.AttemptsPerDay,
	)

	srv := &api.Server{
		UserService:        userService,
		AdminService:       adminService,
		PracticeService:    practiceService,
		ContentService:     contentService,
		StatsService:       statsService,
		CertificateService: certificateService,
		DB:                 database.DB,
		RenderPool:         renderPool,
		AudioDir:           cfg.AudioDir,
	}

	ctx, cancel := context.WithCancel(context.Background())
	renderPool.Start(ctx)

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

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	renderPool.Stop()

	log.Info("===========================================")
	log.Info("Shakespeare Club Server Stopped")
	log.Info("===========================================")
}
