package jobs_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRollOverHandler struct{ mock.Mock }

func (m *MockRollOverHandler) Handle(ctx context.Context, c commands.RollOverWeeklyHoursCommand) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWeekRolloverJob_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := new(MockRollOverHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(4, nil).Once()
		job := jobs.NewWeekRolloverJob(handler, "", time.UTC, discardLogger())

		require.NoError(t, job.Run(t.Context()))
		handler.AssertExpectations(t)
	})

	t.Run("failure is returned", func(t *testing.T) {
		handler := new(MockRollOverHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, assert.AnError).Once()
		job := jobs.NewWeekRolloverJob(handler, "", time.UTC, discardLogger())

		assert.ErrorIs(t, job.Run(t.Context()), assert.AnError)
	})
}

func TestWeekRolloverJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewWeekRolloverJob(new(MockRollOverHandler), "not a schedule", time.UTC, discardLogger())

	assert.Error(t, job.Start())
}

func TestWeekRolloverJob_FiresOnSchedule(t *testing.T) {
	handler := new(MockRollOverHandler)
	fired := make(chan struct{}, 10)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		fired <- struct{}{}
	})
	job := jobs.NewWeekRolloverJob(handler, "* * * * * *", nil, discardLogger())

	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("rollover did not fire")
	}
}

type blockingWorker struct {
	started atomic.Bool
	stopped chan struct{}
}

func (w *blockingWorker) Run(ctx context.Context) error {
	w.started.Store(true)
	<-ctx.Done()
	close(w.stopped)
	return nil
}

func TestJobManager_StartsAndStopsWorkers(t *testing.T) {
	handler := new(MockRollOverHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	worker := &blockingWorker{stopped: make(chan struct{})}

	manager := jobs.NewJobManager(
		jobs.NewWeekRolloverJob(handler, "", time.UTC, discardLogger()),
		map[string]jobs.Worker{"blocking": worker},
		discardLogger(),
	)

	require.NoError(t, manager.StartAll())
	require.Eventually(t, worker.started.Load, time.Second, 10*time.Millisecond)

	manager.StopAll()

	select {
	case <-worker.stopped:
	default:
		t.Fatal("worker still running after StopAll")
	}
}

func TestJobManager_StartFailsOnBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(
		jobs.NewWeekRolloverJob(new(MockRollOverHandler), "bogus", time.UTC, discardLogger()),
		nil,
		discardLogger(),
	)

	assert.Error(t, manager.StartAll())
}
