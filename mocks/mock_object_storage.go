package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rosterscan/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

// Download writes the []byte given as the first return value to w.
func (m *MockObjectStorage) Download(ctx context.Context, bucket, key string, w io.WriterAt) error {
	args := m.Called(ctx, bucket, key)
	if data, ok := args.Get(0).([]byte); ok {
		if _, err := w.WriteAt(data, 0); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}
