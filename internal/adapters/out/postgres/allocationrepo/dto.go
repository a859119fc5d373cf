// Package allocationrepo persists allocations. A partial unique index on
// order_id (created by postgres.Migrate) keeps at most one non-cancelled
// allocation per order.
package allocationrepo

import (
	"time"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AllocationDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TrainTripID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null"`
	TruckID     uuid.UUID       `gorm:"type:uuid;not null"`
	DriverID    uuid.UUID       `gorm:"type:uuid;not null"`
	AssistantID uuid.UUID       `gorm:"type:uuid;not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Hours       decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	SpaceUnits  int             `gorm:"not null"`
	Status      int             `gorm:"not null;index"`
}

func (AllocationDTO) TableName() string {
	return "allocations"
}

func fromDomain(a *allocation.Allocation) AllocationDTO {
	b := a.Binding()
	return AllocationDTO{
		ID:          a.ID().Bytes(),
		OrderID:     b.OrderID.Bytes(),
		TrainTripID: b.TrainTripID.Bytes(),
		StoreID:     b.StoreID.Bytes(),
		TruckID:     b.TruckID.Bytes(),
		DriverID:    b.DriverID.Bytes(),
		AssistantID: b.AssistantID.Bytes(),
		Date:        a.Date().Time(),
		Hours:       a.Hours(),
		SpaceUnits:  a.SpaceUnits(),
		Status:      int(a.Status()),
	}
}

func toDomain(dto AllocationDTO) (*allocation.Allocation, error) {
	ids := make([]kernel.UUID, 0, 7)
	for _, raw := range []uuid.UUID{
		dto.ID, dto.OrderID, dto.TrainTripID, dto.StoreID, dto.TruckID, dto.DriverID, dto.AssistantID,
	} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	binding := allocation.Binding{
		OrderID:     ids[1],
		TrainTripID: ids[2],
		StoreID:     ids[3],
		TruckID:     ids[4],
		DriverID:    ids[5],
		AssistantID: ids[6],
	}

	return allocation.RestoreAllocation(
		ids[0],
		binding,
		kernel.DateFromTime(dto.Date, time.UTC),
		dto.Hours,
		dto.SpaceUnits,
		allocation.Status(dto.Status),
	)
}
