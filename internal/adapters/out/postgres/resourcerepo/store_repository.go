package resourcerepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"

	"gorm.io/gorm"
)

// GormStoreRepository implements ports.StoreRepository using GORM.
type GormStoreRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormStoreRepository(db *gorm.DB, tracker aggregateTracker) *GormStoreRepository {
	return &GormStoreRepository{db: db, tracker: tracker}
}

func (r *GormStoreRepository) Add(ctx context.Context, aggregate *resource.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := storeFromDomain(aggregate)
	if err := create(ctx, r.db, "store", &dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormStoreRepository) Update(ctx context.Context, aggregate *resource.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := storeFromDomain(aggregate)
	if err := updateByID(ctx, r.db, "store", aggregate.ID(), &dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Store, error) {
	dto, err := findByID[StoreDTO](ctx, r.db, "store", id)
	if err != nil {
		return nil, err
	}
	return storeToDomain(dto)
}

func (r *GormStoreRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.Store, error) {
	dto, err := findByID[StoreDTO](ctx, forUpdate(r.db), "store", id)
	if err != nil {
		return nil, err
	}
	return storeToDomain(dto)
}
