// Package resourcerepo persists the three capacity-bearing resources: train
// trips, stores and trucks. Capacity counters are stored next to the totals
// and are only written while the row is locked.
package resourcerepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"

	"github.com/google/uuid"
)

type TrainTripDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartureCity string    `gorm:"not null"`
	ArrivalCity   string    `gorm:"not null"`
	DepartureTime time.Time `gorm:"not null"`
	ArrivalTime   time.Time `gorm:"not null"`
	Capacity      int       `gorm:"not null"`
	Allocated     int       `gorm:"not null"`
}

func (TrainTripDTO) TableName() string {
	return "train_trips"
}

type StoreDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	City     string    `gorm:"not null"`
	Capacity int       `gorm:"not null"`
	Consumed int       `gorm:"not null"`
}

func (StoreDTO) TableName() string {
	return "stores"
}

type TruckDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HomeStoreID uuid.UUID `gorm:"type:uuid;not null;index"`
	Capacity    int       `gorm:"not null"`
	Status      int       `gorm:"not null"`
}

func (TruckDTO) TableName() string {
	return "trucks"
}

func tripFromDomain(t *resource.TrainTrip) TrainTripDTO {
	return TrainTripDTO{
		ID:            t.ID().Bytes(),
		DepartureCity: t.DepartureCity().String(),
		ArrivalCity:   t.ArrivalCity().String(),
		DepartureTime: t.DepartureTime().UTC(),
		ArrivalTime:   t.ArrivalTime().UTC(),
		Capacity:      t.Capacity(),
		Allocated:     t.Allocated(),
	}
}

func tripToDomain(dto TrainTripDTO) (*resource.TrainTrip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	departure, err := kernel.NewCity(dto.DepartureCity)
	if err != nil {
		return nil, err
	}
	arrival, err := kernel.NewCity(dto.ArrivalCity)
	if err != nil {
		return nil, err
	}
	return resource.RestoreTrainTrip(
		id,
		departure,
		arrival,
		dto.DepartureTime,
		dto.ArrivalTime,
		dto.Capacity,
		dto.Allocated,
	)
}

func storeFromDomain(s *resource.Store) StoreDTO {
	return StoreDTO{
		ID:       s.ID().Bytes(),
		City:     s.City().String(),
		Capacity: s.Capacity(),
		Consumed: s.Consumed(),
	}
}

func storeToDomain(dto StoreDTO) (*resource.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	city, err := kernel.NewCity(dto.City)
	if err != nil {
		return nil, err
	}
	return resource.RestoreStore(id, city, dto.Capacity, dto.Consumed)
}

func truckFromDomain(t *resource.Truck) TruckDTO {
	return TruckDTO{
		ID:          t.ID().Bytes(),
		HomeStoreID: t.HomeStoreID().Bytes(),
		Capacity:    t.Capacity(),
		Status:      int(t.Status()),
	}
}

func truckToDomain(dto TruckDTO) (*resource.Truck, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	homeStoreID, err := kernel.UUIDFromBytes(dto.HomeStoreID[:])
	if err != nil {
		return nil, err
	}
	return resource.RestoreTruck(id, homeStoreID, dto.Capacity, resource.TruckStatus(dto.Status))
}
