package resourcerepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"

	"gorm.io/gorm"
)

// GormTrainTripRepository implements ports.TrainTripRepository using GORM.
type GormTrainTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTrainTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTrainTripRepository {
	return &GormTrainTripRepository{db: db, tracker: tracker}
}

func (r *GormTrainTripRepository) Add(ctx context.Context, aggregate *resource.TrainTrip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := tripFromDomain(aggregate)
	if err := create(ctx, r.db, "train trip", &dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTrainTripRepository) Update(ctx context.Context, aggregate *resource.TrainTrip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := tripFromDomain(aggregate)
	if err := updateByID(ctx, r.db, "train trip", aggregate.ID(), &dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTrainTripRepository) Get(ctx context.Context, id kernel.UUID) (*resource.TrainTrip, error) {
	dto, err := findByID[TrainTripDTO](ctx, r.db, "train trip", id)
	if err != nil {
		return nil, err
	}
	return tripToDomain(dto)
}

func (r *GormTrainTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.TrainTrip, error) {
	dto, err := findByID[TrainTripDTO](ctx, forUpdate(r.db), "train trip", id)
	if err != nil {
		return nil, err
	}
	return tripToDomain(dto)
}
