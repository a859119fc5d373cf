package ports

import (
	"context"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
)

// AllocationRepository persists allocations. At most one non-cancelled
// allocation exists per order.
type AllocationRepository interface {
	Add(ctx context.Context, aggregate *allocation.Allocation) error
	Update(ctx context.Context, aggregate *allocation.Allocation) error
	Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error)

	// ListByStatus returns allocations in any of the given statuses, by date.
	ListByStatus(ctx context.Context, statuses ...allocation.Status) ([]*allocation.Allocation, error)
}
