package resourcerepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/pgerrs"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// findByID loads one row of type T; name labels errors.
func findByID[T any](ctx context.Context, db *gorm.DB, name string, id kernel.UUID) (T, error) {
	var dto T
	if err := id.Validate(); err != nil {
		return dto, err
	}

	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto, errs.NewObjectNotFoundError(name, id.String())
		}
		return dto, pgerrs.Classify("get "+name, err)
	}
	return dto, nil
}

// updateByID writes every column of dto over the row with the same id.
func updateByID[T any](ctx context.Context, db *gorm.DB, name string, id kernel.UUID, dto *T) error {
	var model T
	result := db.WithContext(ctx).Model(&model).Where("id = ?", id.Bytes()).Select("*").Updates(dto)
	if result.Error != nil {
		return pgerrs.Classify("update "+name, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(name, id.String())
	}
	return nil
}

func create[T any](ctx context.Context, db *gorm.DB, name string, dto *T) error {
	if err := db.WithContext(ctx).Create(dto).Error; err != nil {
		return pgerrs.Classify("add "+name, err)
	}
	return nil
}
