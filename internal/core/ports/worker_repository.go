package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
)

// WorkerRepository persists drivers and assistants together with their
// assignment history and week counter.
type WorkerRepository interface {
	Add(ctx context.Context, aggregate *labor.Worker) error

	// Update replaces the stored history with the aggregate's and saves the counter.
	Update(ctx context.Context, aggregate *labor.Worker) error

	Get(ctx context.Context, id kernel.UUID) (*labor.Worker, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*labor.Worker, error)

	// ListIDs returns the ids of every worker, for batch jobs that then load
	// and lock workers one at a time.
	ListIDs(ctx context.Context) ([]kernel.UUID, error)
}
