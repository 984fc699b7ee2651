package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rosterscan/internal/domain"
	"rosterscan/internal/pipeline"
	"rosterscan/internal/service"
)

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) CreateJob(ctx context.Context, input service.CreateJobInput) (*domain.UploadJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadJob), args.Error(1)
}

func (m *MockUploadService) GetJob(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadJob), args.Error(1)
}

func (m *MockUploadService) ListPlayers(ctx context.Context, rosterID uuid.UUID) ([]domain.Player, error) {
	args := m.Called(ctx, rosterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockUploadService) ProcessJob(ctx context.Context, job *domain.UploadJob) {
	m.Called(ctx, job)
}

// MockJobRunner is a mock implementation of service.JobRunner.
type MockJobRunner struct {
	mock.Mock
}

func (m *MockJobRunner) Run(ctx context.Context, in pipeline.Input) (*pipeline.Outcome, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Outcome), args.Error(1)
}
