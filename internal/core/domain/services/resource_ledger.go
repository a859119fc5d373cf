package services

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"
	"freight/internal/pkg/errs"
)

// Reservation is the handle returned by ResourceLedger.Reserve. It is also
// rebuilt from a persisted allocation when the allocation is cancelled.
type Reservation struct {
	Kind       resource.Kind
	ResourceID kernel.UUID
	Amount     int
}

func NewReservation(kind resource.Kind, resourceID kernel.UUID, amount int) Reservation {
	return Reservation{Kind: kind, ResourceID: resourceID, Amount: amount}
}

// ResourceLedger reserves and releases capacity on trips, stores and trucks.
// The ledger itself is stateless: the remaining amounts live on the
// aggregates, which the caller loads under a row lock.
type ResourceLedger struct{}

func NewResourceLedger() ResourceLedger {
	return ResourceLedger{}
}

// Check reports whether amount could be reserved on r right now.
func (l ResourceLedger) Check(r resource.Reservable, amount int) *Violation {
	if r.Remaining() >= amount {
		return nil
	}
	v := l.violation(r, amount)
	return &v
}

// Reserve takes amount from r. On shortage it returns a Violation as the
// error and r is unchanged.
func (l ResourceLedger) Reserve(r resource.Reservable, amount int) (Reservation, error) {
	if err := r.Reserve(amount); err != nil {
		if errors.Is(err, resource.ErrCapacityExceeded) {
			return Reservation{}, l.violation(r, amount)
		}
		return Reservation{}, err
	}
	return NewReservation(r.Kind(), r.ID(), amount), nil
}

// Release gives a reservation back to the resource it was taken from.
func (l ResourceLedger) Release(r resource.Reservable, h Reservation) error {
	if h.Kind != r.Kind() || !h.ResourceID.IsEqual(r.ID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"reservation is invalid",
			fmt.Errorf("reservation on %s %s cannot be released on %s %s", h.Kind, h.ResourceID, r.Kind(), r.ID()),
		)
	}
	return r.Release(h.Amount)
}

func (l ResourceLedger) violation(r resource.Reservable, amount int) Violation {
	switch r.Kind() {
	case resource.KindTruck:
		return newViolation(ResourceUnavailable, SubjectTruck, r.ID(), "truck is not available")
	case resource.KindStore:
		return newViolation(CapacityExceeded, SubjectStore, r.ID(),
			"%d space units requested, %d remaining", amount, r.Remaining())
	default:
		return newViolation(CapacityExceeded, SubjectTrainTrip, r.ID(),
			"%d space units requested, %d remaining", amount, r.Remaining())
	}
}
