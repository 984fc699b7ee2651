package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rosterscan/internal/domain"
)

// MockPlayerRepo is a mock implementation of port.PlayerRepository.
type MockPlayerRepo struct {
	mock.Mock
}

func (m *MockPlayerRepo) ListByRoster(ctx context.Context, rosterID uuid.UUID) ([]domain.Player, error) {
	args := m.Called(ctx, rosterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockPlayerRepo) ApplyBatch(ctx context.Context, inserted, updated []domain.Player) error {
	args := m.Called(ctx, inserted, updated)
	return args.Error(0)
}
