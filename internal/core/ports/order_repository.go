// Package ports defines the persistence contracts of the allocation engine.
// Adapters implement them; the application layer depends only on these
// interfaces.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates. Orders are inserted by the
// intake collaborator; Add exists for that collaborator and for tests.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and allocation changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and holds its row lock until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListPending returns Pending orders by required date, optionally only
	// those bound for city.
	ListPending(ctx context.Context, city *kernel.City) ([]*order.Order, error)
}
