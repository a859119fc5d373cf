package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Worker is a long running consumer that blocks in Run until ctx is done.
type Worker interface {
	Run(ctx context.Context) error
}

// JobManager coordinates all background work in the application: the cron
// jobs and the long running consumers.
type JobManager struct {
	weekRolloverJob *WeekRolloverJob
	workers         map[string]Worker
	logger          *slog.Logger

	failures chan error
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewJobManager creates a job manager. Workers are keyed by a name used in logs.
func NewJobManager(weekRolloverJob *WeekRolloverJob, workers map[string]Worker, logger *slog.Logger) *JobManager {
	return &JobManager{
		weekRolloverJob: weekRolloverJob,
		workers:         workers,
		logger:          logger.With("component", "job_manager"),
		failures:        make(chan error, len(workers)),
	}
}

// Failures delivers the error of every worker that stops on its own. A worker
// that returns nil after StopAll is not reported.
func (jm *JobManager) Failures() <-chan error {
	return jm.failures
}

// StartAll starts the cron jobs and launches every worker.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.weekRolloverJob.Start(); err != nil {
		return fmt.Errorf("failed to start week rollover job: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	jm.cancel = cancel

	for name, w := range jm.workers {
		jm.wg.Add(1)
		go func() {
			defer jm.wg.Done()
			if err := w.Run(ctx); err != nil {
				jm.logger.ErrorContext(ctx, "Worker stopped with error", "worker", name, "error", err)
				jm.failures <- fmt.Errorf("worker %s: %w", name, err)
			}
		}()
	}

	return nil
}

// StopAll stops the cron jobs and waits for every worker to return.
func (jm *JobManager) StopAll() {
	jm.weekRolloverJob.Stop()
	if jm.cancel != nil {
		jm.cancel()
	}
	jm.wg.Wait()
}
