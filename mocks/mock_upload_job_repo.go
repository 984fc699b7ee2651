package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rosterscan/internal/domain"
)

// MockUploadJobRepo is a mock implementation of port.UploadJobRepository.
type MockUploadJobRepo struct {
	mock.Mock
}

func (m *MockUploadJobRepo) Create(ctx context.Context, job *domain.UploadJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockUploadJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadJob), args.Error(1)
}

func (m *MockUploadJobRepo) ClaimPending(ctx context.Context, limit int) ([]domain.UploadJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadJob), args.Error(1)
}

func (m *MockUploadJobRepo) UpdateResult(ctx context.Context, job *domain.UploadJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
