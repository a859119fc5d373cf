package resourcerepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"

	"gorm.io/gorm"
)

// GormTruckRepository implements ports.TruckRepository using GORM.
type GormTruckRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTruckRepository(db *gorm.DB, tracker aggregateTracker) *GormTruckRepository {
	return &GormTruckRepository{db: db, tracker: tracker}
}

func (r *GormTruckRepository) Add(ctx context.Context, aggregate *resource.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := truckFromDomain(aggregate)
	if err := create(ctx, r.db, "truck", &dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTruckRepository) Update(ctx context.Context, aggregate *resource.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := truckFromDomain(aggregate)
	if err := updateByID(ctx, r.db, "truck", aggregate.ID(), &dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTruckRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Truck, error) {
	dto, err := findByID[TruckDTO](ctx, r.db, "truck", id)
	if err != nil {
		return nil, err
	}
	return truckToDomain(dto)
}

func (r *GormTruckRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.Truck, error) {
	dto, err := findByID[TruckDTO](ctx, forUpdate(r.db), "truck", id)
	if err != nil {
		return nil, err
	}
	return truckToDomain(dto)
}
