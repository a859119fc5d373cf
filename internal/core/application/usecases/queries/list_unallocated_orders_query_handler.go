package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListUnallocatedOrdersQueryHandler reads the backlog of Pending orders,
// earliest required date first.
type ListUnallocatedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListUnallocatedOrdersQueryHandler(db *gorm.DB) ListUnallocatedOrdersQueryHandler {
	return ListUnallocatedOrdersQueryHandler{db: db}
}

func (h ListUnallocatedOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListUnallocatedOrdersQuery,
) ([]UnallocatedOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, destination, required_date, space_units
		FROM orders
		WHERE status = @status`
	params := map[string]any{"status": int(order.Pending)}
	if city := query.City(); city != nil {
		sql += " AND destination_key = @city"
		params["city"] = city.Key()
	}
	sql += " ORDER BY required_date, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, params).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]UnallocatedOrder, 0)
	for rows.Next() {
		var (
			id           uuid.UUID
			destination  string
			requiredDate time.Time
			spaceUnits   int
		)
		if err = rows.Scan(&id, &destination, &requiredDate, &spaceUnits); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, UnallocatedOrder{
			ID:           orderID,
			Destination:  destination,
			RequiredDate: kernel.DateFromTime(requiredDate, time.UTC),
			SpaceUnits:   spaceUnits,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
