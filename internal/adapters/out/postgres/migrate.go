package postgres

import (
	"context"
	"fmt"

	"freight/internal/adapters/out/postgres/allocationrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/resourcerepo"
	"freight/internal/adapters/out/postgres/workerrepo"
	"freight/internal/core/domain/model/allocation"

	"gorm.io/gorm"
)

// Tables lists every table Migrate manages, children after parents.
var Tables = []string{
	"orders",
	"train_trips",
	"stores",
	"trucks",
	"workers",
	"worker_assignments",
	"allocations",
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&orderrepo.OrderDTO{},
		&resourcerepo.TrainTripDTO{},
		&resourcerepo.StoreDTO{},
		&resourcerepo.TruckDTO{},
		&workerrepo.WorkerDTO{},
		&workerrepo.AssignmentDTO{},
		&allocationrepo.AllocationDTO{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// One live allocation per order.
	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_allocations_live_order ON allocations (order_id) WHERE status <> %d",
		int(allocation.Cancelled),
	)
	if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("create live allocation index: %w", err)
	}
	return nil
}
