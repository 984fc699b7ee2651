package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rosterscan/internal/domain"
	"rosterscan/internal/port"
)

type uploadJobRepo struct {
	db *sqlx.DB
}

// NewUploadJobRepo creates a new PostgreSQL-backed UploadJobRepository.
func NewUploadJobRepo(db *sqlx.DB) port.UploadJobRepository {
	return &uploadJobRepo{db: db}
}

func (r *uploadJobRepo) Create(ctx context.Context, job *domain.UploadJob) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO upload_jobs (
			id, roster_id, backend, image_keys, status, error,
			inserted_count, updated_count, attempts, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		job.ID, job.RosterID, job.Backend, job.ImageKeys, job.Status, job.Error,
		job.InsertedCount, job.UpdatedCount, job.Attempts, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("uploadJobRepo.Create: %w", err)
	}
	return nil
}

func (r *uploadJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error) {
	var job domain.UploadJob
	err := r.db.GetContext(ctx, &job, "SELECT * FROM upload_jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUploadJobNotFound
		}
		return nil, fmt.Errorf("uploadJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *uploadJobRepo) ClaimPending(ctx context.Context, limit int) ([]domain.UploadJob, error) {
	var jobs []domain.UploadJob
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE upload_jobs SET
			status = $1, attempts = attempts + 1, updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM upload_jobs
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.JobStatusProcessing, domain.JobStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("uploadJobRepo.ClaimPending: %w", err)
	}
	return jobs, nil
}

func (r *uploadJobRepo) UpdateResult(ctx context.Context, job *domain.UploadJob) error {
	job.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE upload_jobs SET
			status = $1, error = $2, inserted_count = $3, updated_count = $4,
			candidates = $5, validation_errors = $6, completed_at = $7, updated_at = $8
		 WHERE id = $9`,
		job.Status, job.Error, job.InsertedCount, job.UpdatedCount,
		jsonList(job.Candidates), jsonList(job.ValidationErrors), job.CompletedAt, job.UpdatedAt,
		job.ID)
	if err != nil {
		return fmt.Errorf("uploadJobRepo.UpdateResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUploadJobNotFound
	}
	return nil
}

// jsonList stores an empty payload as an empty JSON array.
func jsonList(b []byte) []byte {
	if len(b) == 0 || string(b) == "null" {
		return []byte("[]")
	}
	return b
}
