package workerrepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/pgerrs"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the worker row and its history.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *labor.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, assignments := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return pgerrs.Classify("add worker", err)
	}
	if len(assignments) > 0 {
		if err := db.Create(&assignments).Error; err != nil {
			return pgerrs.Classify("add worker assignments", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the worker row and replaces its stored history with the
// aggregate's. Callers hold the worker row lock, so the delete and reinsert
// cannot interleave with another writer.
func (r *GormWorkerRepository) Update(ctx context.Context, aggregate *labor.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, assignments := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&WorkerDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerrs.Classify("update worker", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", aggregate.ID().String())
	}

	if err := db.Where("worker_id = ?", dto.ID).Delete(&AssignmentDTO{}).Error; err != nil {
		return pgerrs.Classify("clear worker assignments", err)
	}
	if len(assignments) > 0 {
		if err := db.Create(&assignments).Error; err != nil {
			return pgerrs.Classify("write worker assignments", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*labor.Worker, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate locks the worker row. The history rows are not locked
// themselves; every writer of them goes through the worker lock.
func (r *GormWorkerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*labor.Worker, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormWorkerRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*labor.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, pgerrs.Classify("get worker", err)
	}

	var assignments []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("worker_id = ?", dto.ID).
		Order("date, allocation_id").
		Find(&assignments).Error; err != nil {
		return nil, pgerrs.Classify("get worker assignments", err)
	}

	return toDomain(dto, assignments)
}

// ListIDs returns every worker id in id order.
func (r *GormWorkerRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	var dtos []WorkerDTO
	if err := r.db.WithContext(ctx).Select("id").Order("id").Find(&dtos).Error; err != nil {
		return nil, pgerrs.Classify("list workers", err)
	}

	ids := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
