package resource

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Kind distinguishes the resources an allocation reserves.
type Kind string

const (
	KindTrainTrip Kind = "train_trip"
	KindStore     Kind = "store"
	KindTruck     Kind = "truck"
)

// Reservable is a resource with a remaining amount that can be taken and
// given back. Quantity resources count space units; a truck counts itself
// once.
type Reservable interface {
	ID() kernel.UUID
	Kind() Kind
	Remaining() int
	Reserve(amount int) error
	Release(amount int) error
}

// ErrCapacityExceeded is matched by every CapacityError.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityError is returned by Reserve when the resource has less left than requested.
type CapacityError struct {
	Kind      Kind
	ID        kernel.UUID
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s %s has %d left, %d requested", ErrCapacityExceeded, e.Kind, e.ID, e.Remaining, e.Requested)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

func validateAmount(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%d is not greater than 0", amount))
	}
	return nil
}

func capacityExceeded(kind Kind, id kernel.UUID, requested, remaining int) error {
	return &CapacityError{Kind: kind, ID: id, Requested: requested, Remaining: remaining}
}

func overRelease(kind Kind, requested, reserved int) error {
	return errs.NewValueIsOutOfRangeError(string(kind)+" release", requested, 1, reserved)
}
