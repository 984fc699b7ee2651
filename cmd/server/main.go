package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rosterscan/internal/bootstrap"
	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/handler"
	"rosterscan/internal/logging"
	"rosterscan/internal/repository/postgres"
	"rosterscan/internal/router"
	"rosterscan/internal/service"
	s3storage "rosterscan/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	jobRepo := postgres.NewUploadJobRepo(db)
	playerRepo := postgres.NewPlayerRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize pipeline and services
	pipe, err := bootstrap.Pipeline(cfg, playerRepo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	defaultBackend, ok := domain.ParseOCRBackend(cfg.OCR.Backend)
	if !ok {
		return fmt.Errorf("invalid default ocr backend %q", cfg.OCR.Backend)
	}
	uploadSvc := service.NewUploadService(jobRepo, playerRepo, s3Client, pipe, service.UploadConfig{
		Bucket:         cfg.S3.Bucket,
		MaxFileSizeMB:  cfg.S3.MaxFileSizeMB,
		DefaultBackend: defaultBackend,
		WorkDir:        cfg.OCR.WorkDir,
	}, logger)

	worker := service.NewJobQueueWorker(jobRepo, uploadSvc, service.JobQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
		JobTimeout:   time.Duration(cfg.Queue.JobTimeoutSecs) * time.Second,
	}, logger)

	// Initialize handlers
	uploadH := handler.NewUploadHandler(uploadSvc, logger)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(uploadH, healthH, cfg.Server.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	<-workerDone
	logger.Info("shutdown complete")
	return nil
}
