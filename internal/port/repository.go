package port

import (
	"context"

	"github.com/google/uuid"

	"rosterscan/internal/domain"
)

// UploadJobRepository defines the contract for upload job persistence.
type UploadJobRepository interface {
	Create(ctx context.Context, job *domain.UploadJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error)
	// ClaimPending atomically moves up to limit pending jobs to processing
	// and returns them.
	ClaimPending(ctx context.Context, limit int) ([]domain.UploadJob, error)
	UpdateResult(ctx context.Context, job *domain.UploadJob) error
}

// PlayerRepository defines the contract for player persistence.
type PlayerRepository interface {
	ListByRoster(ctx context.Context, rosterID uuid.UUID) ([]domain.Player, error)
	// ApplyBatch inserts and updates players in one transaction.
	ApplyBatch(ctx context.Context, inserted, updated []domain.Player) error
}
