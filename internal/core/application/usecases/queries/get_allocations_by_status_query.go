package queries

import (
	"errors"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAllocationsByStatusQueryIsNotConstructed = errors.New(
	"GetAllocationsByStatusQuery must be created via NewGetAllocationsByStatusQuery constructor",
)

// GetAllocationsByStatusQuery lists allocations in any of the given statuses.
// Without statuses it lists the live ones, Scheduled and InProgress.
type GetAllocationsByStatusQuery struct {
	statuses []allocation.Status
	guard    guard.ConstructorGuard
}

func NewGetAllocationsByStatusQuery(statuses ...allocation.Status) (GetAllocationsByStatusQuery, error) {
	if len(statuses) == 0 {
		statuses = []allocation.Status{allocation.Scheduled, allocation.InProgress}
	}

	validation := make([]error, 0, len(statuses))
	for _, s := range statuses {
		validation = append(validation, s.Validate())
	}
	if err := errors.Join(validation...); err != nil {
		return GetAllocationsByStatusQuery{}, err
	}

	return GetAllocationsByStatusQuery{
		statuses: append([]allocation.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetAllocationsByStatusQuery) Statuses() []allocation.Status {
	return append([]allocation.Status(nil), q.statuses...)
}

func (q GetAllocationsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetAllocationsByStatusQueryIsNotConstructed)
}

// AllocationView is the read model of one allocation.
type AllocationView struct {
	ID         kernel.UUID
	Binding    allocation.Binding
	Date       kernel.Date
	Hours      decimal.Decimal
	SpaceUnits int
	Status     allocation.Status
}
