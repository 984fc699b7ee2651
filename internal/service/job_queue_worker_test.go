package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rosterscan/internal/domain"
	"rosterscan/internal/service"
	"rosterscan/mocks"
)

func startWorker(w *service.JobQueueWorker) (context.CancelFunc, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	return cancel, done
}

func TestJobQueueWorker_PollsAndDispatches(t *testing.T) {
	jobs := new(mocks.MockUploadJobRepo)
	uploads := new(mocks.MockUploadService)

	job := domain.UploadJob{ID: uuid.New(), RosterID: uuid.New(), Status: domain.JobStatusProcessing, Attempts: 1}
	jobs.On("ClaimPending", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.UploadJob{job}, nil).Once()
	jobs.On("ClaimPending", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.UploadJob{}, nil).Maybe()
	uploads.On("ProcessJob", mock.Anything, mock.MatchedBy(func(j *domain.UploadJob) bool {
		return j.ID == job.ID
	})).Return().Once()

	w := service.NewJobQueueWorker(jobs, uploads, service.JobQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}, nil)

	cancel, done := startWorker(w)
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	jobs.AssertCalled(t, "ClaimPending", mock.Anything, mock.AnythingOfType("int"))
	uploads.AssertExpectations(t)
}

func TestJobQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	jobs := new(mocks.MockUploadJobRepo)
	uploads := new(mocks.MockUploadService)
	jobs.On("ClaimPending", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.UploadJob{}, nil).Maybe()

	cfg := service.JobQueueConfig{PollInterval: 50 * time.Millisecond, Concurrency: 3}
	cancel, done := startWorker(service.NewJobQueueWorker(jobs, uploads, cfg, nil))
	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	for _, call := range jobs.Calls {
		if call.Method == "ClaimPending" {
			assert.LessOrEqual(t, call.Arguments.Get(1).(int), cfg.Concurrency)
		}
	}
}

func TestJobQueueWorker_WaitsForInFlightJobs(t *testing.T) {
	jobs := new(mocks.MockUploadJobRepo)
	uploads := new(mocks.MockUploadService)

	finished := make(chan struct{})
	jobs.On("ClaimPending", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.UploadJob{{ID: uuid.New()}}, nil).Once()
	jobs.On("ClaimPending", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.UploadJob{}, nil).Maybe()
	uploads.On("ProcessJob", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(150 * time.Millisecond)
		close(finished)
	}).Return().Once()

	cancel, done := startWorker(service.NewJobQueueWorker(jobs, uploads, service.JobQueueConfig{
		PollInterval: 20 * time.Millisecond,
		Concurrency:  1,
	}, nil))
	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	select {
	case <-finished:
	default:
		t.Fatal("Start returned before the in-flight job finished")
	}
}

func TestJobQueueWorker_CleanShutdown(t *testing.T) {
	jobs := new(mocks.MockUploadJobRepo)
	uploads := new(mocks.MockUploadService)
	jobs.On("ClaimPending", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.UploadJob{}, nil).Maybe()

	cancel, done := startWorker(service.NewJobQueueWorker(jobs, uploads, service.JobQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}, nil))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
	uploads.AssertNotCalled(t, "ProcessJob", mock.Anything, mock.Anything)
}
