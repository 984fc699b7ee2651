package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"rosterscan/internal/port"
)

// JobQueueConfig holds settings for the upload job queue worker.
type JobQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// JobQueueWorker polls for pending upload jobs and dispatches them for processing.
type JobQueueWorker struct {
	jobRepo port.UploadJobRepository
	uploads UploadService
	cfg     JobQueueConfig
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewJobQueueWorker creates a new JobQueueWorker.
func NewJobQueueWorker(jobRepo port.UploadJobRepository, uploads UploadService, cfg JobQueueConfig, logger *zap.Logger) *JobQueueWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &JobQueueWorker{
		jobRepo: jobRepo,
		uploads: uploads,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight jobs have finished.
func (w *JobQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.logger.Info("jobQueueWorker: started",
		zap.Duration("poll", w.cfg.PollInterval), zap.Int("concurrency", w.cfg.Concurrency))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("jobQueueWorker: shutting down, waiting for in-flight jobs")
			w.wg.Wait()
			w.logger.Info("jobQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimPending(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				w.logger.Error("jobQueueWorker: ClaimPending failed", zap.Error(err))
				continue
			}

			for i := range jobs {
				job := jobs[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// Detached from the poll context so in-flight jobs finish during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					w.logger.Info("jobQueueWorker: dispatching job",
						zap.String("job_id", job.ID.String()), zap.Int("attempt", job.Attempts))
					w.uploads.ProcessJob(jobCtx, &job)
				}()
			}
		}
	}
}
