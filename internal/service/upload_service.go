package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rosterscan/internal/domain"
	"rosterscan/internal/pipeline"
	"rosterscan/internal/port"
)

// ImageUpload is one uploaded screenshot.
type ImageUpload struct {
	Filename string
	Size     int64
	File     io.ReadSeeker
}

// CreateJobInput is the DTO for upload job creation. An empty Backend selects
// the configured default.
type CreateJobInput struct {
	RosterID uuid.UUID
	Backend  string
	Images   []ImageUpload
}

// UploadConfig holds settings for the upload service.
type UploadConfig struct {
	Bucket         string
	MaxFileSizeMB  int64
	MaxImages      int
	DefaultBackend domain.OCRBackend
	WorkDir        string
}

// JobRunner executes one extraction job.
type JobRunner interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.Outcome, error)
}

// UploadService defines the roster upload contract.
type UploadService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.UploadJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error)
	ListPlayers(ctx context.Context, rosterID uuid.UUID) ([]domain.Player, error)
	// ProcessJob runs a claimed job and records its result on the job row.
	ProcessJob(ctx context.Context, job *domain.UploadJob)
}

type uploadService struct {
	jobRepo    port.UploadJobRepository
	playerRepo port.PlayerRepository
	storage    port.ObjectStorage
	runner     JobRunner
	cfg        UploadConfig
	logger     *zap.Logger
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	jobRepo port.UploadJobRepository,
	playerRepo port.PlayerRepository,
	storage port.ObjectStorage,
	runner JobRunner,
	cfg UploadConfig,
	logger *zap.Logger,
) UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = 10
	}
	return &uploadService{
		jobRepo:    jobRepo,
		playerRepo: playerRepo,
		storage:    storage,
		runner:     runner,
		cfg:        cfg,
		logger:     logger,
	}
}

var contentTypes = map[domain.FileType]string{
	domain.FileTypeJPG: "image/jpeg",
	domain.FileTypePNG: "image/png",
}

func (s *uploadService) CreateJob(ctx context.Context, input CreateJobInput) (*domain.UploadJob, error) {
	if input.RosterID == uuid.Nil || len(input.Images) == 0 || len(input.Images) > s.cfg.MaxImages {
		return nil, domain.ErrInvalidJobInput
	}
	backend := s.cfg.DefaultBackend
	if input.Backend != "" {
		b, ok := domain.ParseOCRBackend(input.Backend)
		if !ok {
			return nil, domain.ErrUnknownBackend
		}
		backend = b
	}

	fileTypes := make([]domain.FileType, len(input.Images))
	for i, img := range input.Images {
		ft, err := s.checkImage(img)
		if err != nil {
			return nil, err
		}
		fileTypes[i] = ft
	}

	job := &domain.UploadJob{
		ID:       uuid.New(),
		RosterID: input.RosterID,
		Backend:  backend,
		Status:   domain.JobStatusPending,
	}
	log := s.logger.With(zap.String("job_id", job.ID.String()), zap.String("roster_id", job.RosterID.String()))

	for i, img := range input.Images {
		key := fmt.Sprintf("uploads/%s/%s/%d.%s", job.RosterID, job.ID, i, fileTypes[i])
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.cfg.Bucket,
			Key:         key,
			Body:        img.File,
			ContentType: contentTypes[fileTypes[i]],
			Size:        img.Size,
		})
		if err != nil {
			log.Error("uploadService.CreateJob: storage upload failed", zap.String("key", key), zap.Error(err))
			s.deleteObjects(ctx, job.ImageKeys)
			return nil, domain.ErrUploadFailed
		}
		job.ImageKeys = append(job.ImageKeys, key)
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.deleteObjects(ctx, job.ImageKeys)
		return nil, fmt.Errorf("creating upload job: %w", err)
	}
	log.Info("uploadService.CreateJob: job queued",
		zap.String("backend", string(backend)), zap.Int("images", len(job.ImageKeys)))
	return job, nil
}

// checkImage validates the extension, size and magic bytes of an upload and
// rewinds it for reading.
func (s *uploadService) checkImage(img ImageUpload) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(img.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return "", domain.ErrUnsupportedFileType
	}

	if s.cfg.MaxFileSizeMB > 0 && img.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return "", domain.ErrFileTooLarge
	}

	buf := make([]byte, 512)
	n, err := img.File.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading file header: %w", err)
	}
	detected, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}

	if _, err := img.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}
	return detected, nil
}

func (s *uploadService) deleteObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
			s.logger.Warn("uploadService: deleting orphaned object failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *uploadService) GetJob(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *uploadService) ListPlayers(ctx context.Context, rosterID uuid.UUID) ([]domain.Player, error) {
	return s.playerRepo.ListByRoster(ctx, rosterID)
}

func (s *uploadService) ProcessJob(ctx context.Context, job *domain.UploadJob) {
	log := s.logger.With(zap.String("job_id", job.ID.String()), zap.Int("attempt", job.Attempts))
	log.Info("uploadService.ProcessJob: starting", zap.String("backend", string(job.Backend)))

	outcome, err := s.run(ctx, job)
	now := time.Now().UTC()
	job.CompletedAt = &now

	switch {
	case err != nil:
		log.Error("uploadService.ProcessJob: job failed", zap.Error(err))
		job.Status = domain.JobStatusFailed
		job.Error = err.Error()
	default:
		applyOutcome(job, outcome)
		log.Info("uploadService.ProcessJob: finished",
			zap.String("status", string(job.Status)),
			zap.Int("inserted", job.InsertedCount), zap.Int("updated", job.UpdatedCount))
	}

	if err := s.jobRepo.UpdateResult(ctx, job); err != nil {
		log.Error("uploadService.ProcessJob: saving result failed", zap.Error(err))
	}
}

// run downloads the job's images into a temporary directory and runs the
// pipeline over them. The directory is removed on every path.
func (s *uploadService) run(ctx context.Context, job *domain.UploadJob) (*pipeline.Outcome, error) {
	dir, err := os.MkdirTemp(s.cfg.WorkDir, "rosterscan-job-*")
	if err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	paths := make([]string, 0, len(job.ImageKeys))
	for i, key := range job.ImageKeys {
		path := filepath.Join(dir, fmt.Sprintf("%d%s", i, filepath.Ext(key)))
		if err := s.download(ctx, key, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return s.runner.Run(ctx, pipeline.Input{
		Images:   paths,
		Backend:  job.Backend,
		RosterID: job.RosterID,
	})
}

func (s *uploadService) download(ctx context.Context, key, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := s.storage.Download(ctx, s.cfg.Bucket, key, f); err != nil {
		return fmt.Errorf("downloading %s: %w", key, err)
	}
	return nil
}

func applyOutcome(job *domain.UploadJob, out *pipeline.Outcome) {
	job.Status = out.Status
	job.Error = ""
	switch out.Status {
	case domain.JobStatusCompleted:
		job.InsertedCount = len(out.Inserted)
		job.UpdatedCount = len(out.Updated)
	case domain.JobStatusRequiresValidation:
		job.Candidates, _ = json.Marshal(out.Candidates)
		job.ValidationErrors, _ = json.Marshal(out.Errors)
	case domain.JobStatusFailed:
		job.Error = out.Reason
	}
}
