package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetAllocationsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetAllocationsByStatusQueryHandler(db *gorm.DB) GetAllocationsByStatusQueryHandler {
	return GetAllocationsByStatusQueryHandler{db: db}
}

// Handle returns matching allocations by date, then id.
func (h GetAllocationsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetAllocationsByStatusQuery,
) ([]AllocationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	codes := make([]int64, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		codes = append(codes, int64(s))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			train_trip_id,
			store_id,
			truck_id,
			driver_id,
			assistant_id,
			date,
			hours,
			space_units,
			status
		FROM allocations
		WHERE status = ANY(?)
		ORDER BY date, id
	`, pq.Array(codes)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]AllocationView, 0)
	for rows.Next() {
		var (
			raw        [7]uuid.UUID
			date       time.Time
			hours      decimal.Decimal
			spaceUnits int
			status     int
		)
		if err = rows.Scan(
			&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5], &raw[6],
			&date, &hours, &spaceUnits, &status,
		); err != nil {
			return nil, err
		}

		var ids [7]kernel.UUID
		for i, r := range raw {
			id, idErr := kernel.UUIDFromBytes(r[:])
			if idErr != nil {
				return nil, idErr
			}
			ids[i] = id
		}

		views = append(views, AllocationView{
			ID: ids[0],
			Binding: allocation.Binding{
				OrderID:     ids[1],
				TrainTripID: ids[2],
				StoreID:     ids[3],
				TruckID:     ids[4],
				DriverID:    ids[5],
				AssistantID: ids[6],
			},
			Date:       kernel.DateFromTime(date, time.UTC),
			Hours:      hours,
			SpaceUnits: spaceUnits,
			Status:     allocation.Status(status),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
