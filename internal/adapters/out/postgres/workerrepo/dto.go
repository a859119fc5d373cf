// Package workerrepo persists drivers and assistants. The assignment history
// lives in worker_assignments, one row per allocation the worker is booked on;
// the week counter is denormalized onto the workers row.
package workerrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkerDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"not null"`
	Role        int             `gorm:"not null"`
	HomeStoreID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      int             `gorm:"not null"`
	WeekStart   *time.Time      `gorm:"type:date"`
	WeekHours   decimal.Decimal `gorm:"type:numeric(8,2);not null"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

type AssignmentDTO struct {
	WorkerID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AllocationID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	Hours        decimal.Decimal `gorm:"type:numeric(6,2);not null"`
}

func (AssignmentDTO) TableName() string {
	return "worker_assignments"
}

func fromDomain(w *labor.Worker) (WorkerDTO, []AssignmentDTO) {
	dto := WorkerDTO{
		ID:          w.ID().Bytes(),
		Name:        w.Name(),
		Role:        int(w.Role()),
		HomeStoreID: w.HomeStoreID().Bytes(),
		Status:      int(w.Status()),
		WeekHours:   w.WeekHours(),
	}
	if ws := w.WeekStart(); ws.Validate() == nil {
		t := ws.Time()
		dto.WeekStart = &t
	}

	history := w.History()
	assignments := make([]AssignmentDTO, 0, len(history))
	for _, a := range history {
		assignments = append(assignments, AssignmentDTO{
			WorkerID:     dto.ID,
			AllocationID: a.AllocationID().Bytes(),
			Date:         a.Date().Time(),
			Hours:        a.Hours(),
		})
	}
	return dto, assignments
}

func toDomain(dto WorkerDTO, rows []AssignmentDTO) (*labor.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	homeStoreID, err := kernel.UUIDFromBytes(dto.HomeStoreID[:])
	if err != nil {
		return nil, err
	}

	history := make([]labor.Assignment, 0, len(rows))
	for _, row := range rows {
		allocationID, idErr := kernel.UUIDFromBytes(row.AllocationID[:])
		if idErr != nil {
			return nil, idErr
		}
		a, aErr := labor.NewAssignment(allocationID, kernel.DateFromTime(row.Date, time.UTC), row.Hours)
		if aErr != nil {
			return nil, aErr
		}
		history = append(history, a)
	}

	var weekStart kernel.Date
	if dto.WeekStart != nil {
		weekStart = kernel.DateFromTime(*dto.WeekStart, time.UTC)
	}

	return labor.RestoreWorker(
		id,
		dto.Name,
		labor.Role(dto.Role),
		homeStoreID,
		labor.Status(dto.Status),
		history,
		weekStart,
		dto.WeekHours,
	)
}
