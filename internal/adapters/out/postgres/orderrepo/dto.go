// Package orderrepo persists Order aggregates. Rows carry both the display
// name of the destination and its normalized key, so ListPending can filter
// by city without case or whitespace surprises.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Destination    string     `gorm:"not null"`
	DestinationKey string     `gorm:"not null;index"`
	RequiredDate   time.Time  `gorm:"type:date;not null;index"`
	SpaceUnits     int        `gorm:"not null"`
	Status         int        `gorm:"not null;index"`
	AllocationID   *uuid.UUID `gorm:"type:uuid"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Destination:    aggregate.Destination().String(),
		DestinationKey: aggregate.Destination().Key(),
		RequiredDate:   aggregate.RequiredDate().Time(),
		SpaceUnits:     aggregate.SpaceUnits(),
		Status:         int(aggregate.Status()),
	}
	if id := aggregate.AllocationID(); id != nil {
		raw := id.Bytes()
		dto.AllocationID = &raw
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewCity(dto.Destination)
	if err != nil {
		return nil, err
	}

	var allocationID *kernel.UUID
	if dto.AllocationID != nil {
		aid, idErr := kernel.UUIDFromBytes(dto.AllocationID[:])
		if idErr != nil {
			return nil, idErr
		}
		allocationID = &aid
	}

	return order.RestoreOrder(
		id,
		destination,
		kernel.DateFromTime(dto.RequiredDate, time.UTC),
		dto.SpaceUnits,
		order.Status(dto.Status),
		allocationID,
	)
}
