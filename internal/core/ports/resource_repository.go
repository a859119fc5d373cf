package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"
)

// TrainTripRepository persists train trips and their allocated capacity.
type TrainTripRepository interface {
	Add(ctx context.Context, aggregate *resource.TrainTrip) error
	Update(ctx context.Context, aggregate *resource.TrainTrip) error
	Get(ctx context.Context, id kernel.UUID) (*resource.TrainTrip, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.TrainTrip, error)
}

// StoreRepository persists stores and their consumed capacity.
type StoreRepository interface {
	Add(ctx context.Context, aggregate *resource.Store) error
	Update(ctx context.Context, aggregate *resource.Store) error
	Get(ctx context.Context, id kernel.UUID) (*resource.Store, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.Store, error)
}

// TruckRepository persists trucks and their availability.
type TruckRepository interface {
	Add(ctx context.Context, aggregate *resource.Truck) error
	Update(ctx context.Context, aggregate *resource.Truck) error
	Get(ctx context.Context, id kernel.UUID) (*resource.Truck, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.Truck, error)
}
