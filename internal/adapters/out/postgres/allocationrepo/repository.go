package allocationrepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/pgerrs"
	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAllocationRepository implements ports.AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAllocationRepository) Add(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Classify("add allocation", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the status. The binding, date and hours never change after
// creation but are written back as-is.
func (r *GormAllocationRepository) Update(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AllocationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerrs.Classify("update allocation", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("allocation", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormAllocationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormAllocationRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*allocation.Allocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", id.String())
		}
		return nil, pgerrs.Classify("get allocation", err)
	}

	return toDomain(dto)
}

// ListByStatus returns the allocations in any of statuses ordered by date,
// then id. No statuses means no rows.
func (r *GormAllocationRepository) ListByStatus(
	ctx context.Context,
	statuses ...allocation.Status,
) ([]*allocation.Allocation, error) {
	if len(statuses) == 0 {
		return []*allocation.Allocation{}, nil
	}

	codes := make([]int64, 0, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		codes = append(codes, int64(s))
	}

	var dtos []AllocationDTO
	if err := r.db.WithContext(ctx).
		Where("status = ANY(?)", pq.Array(codes)).
		Order("date, id").
		Find(&dtos).Error; err != nil {
		return nil, pgerrs.Classify("list allocations", err)
	}

	allocations := make([]*allocation.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, nil
}
