package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer order waiting for, or bound to, an allocation.
//
// Orders are created by the intake collaborator and only mutated by the
// allocation engine. Invariants:
//   - space units are positive
//   - Allocated, InTransit and Delivered orders reference their allocation
//   - Pending and Cancelled orders reference none
//   - Delivered and Cancelled orders never change again
type Order struct {
	id           kernel.UUID
	destination  kernel.City
	requiredDate kernel.Date
	spaceUnits   int
	status       Status

	// allocationID is the current non-cancelled allocation, nil while Pending or Cancelled.
	allocationID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustCity("Kandy"), kernel.MustDate(2025, 3, 3), 60)
func NewOrder(id kernel.UUID, destination kernel.City, requiredDate kernel.Date, spaceUnits int) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDestination(destination),
		o.setRequiredDate(requiredDate),
		o.setSpaceUnits(spaceUnits),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, checking that
// status and allocation reference agree.
func RestoreOrder(
	id kernel.UUID,
	destination kernel.City,
	requiredDate kernel.Date,
	spaceUnits int,
	status Status,
	allocationID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDestination(destination),
		o.setRequiredDate(requiredDate),
		o.setSpaceUnits(spaceUnits),
		o.setStatus(status, allocationID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Destination() kernel.City {
	return o.destination
}

func (o *Order) RequiredDate() kernel.Date {
	return o.requiredDate
}

func (o *Order) SpaceUnits() int {
	return o.spaceUnits
}

func (o *Order) Status() Status {
	return o.status
}

// AllocationID returns the current allocation, or nil.
func (o *Order) AllocationID() *kernel.UUID {
	return o.allocationID
}

// Allocate binds a Pending order to a freshly committed allocation.
func (o *Order) Allocate(allocationID kernel.UUID) error {
	if err := allocationID.Validate(); err != nil {
		return err
	}

	next, err := o.status.Allocate()
	if err != nil {
		return err
	}

	o.status = next
	o.allocationID = &allocationID
	return nil
}

// Dispatch marks the order as picked up by its truck.
func (o *Order) Dispatch() error {
	next, err := o.status.Dispatch()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Deliver marks the order as delivered. The allocation reference is kept.
func (o *Order) Deliver() error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Release puts an allocated order back into the backlog after its allocation
// was cancelled by an operator or by a failed delivery.
func (o *Order) Release() error {
	next, err := o.status.Release()
	if err != nil {
		return err
	}
	o.status = next
	o.allocationID = nil
	return nil
}

// Cancel withdraws the order for good. The caller is responsible for
// cancelling the allocation first if there is one.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	o.allocationID = nil
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDestination(city kernel.City) error {
	if err := city.Validate(); err != nil {
		return err
	}
	o.destination = city
	return nil
}

func (o *Order) setRequiredDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}
	o.requiredDate = date
	return nil
}

func (o *Order) setSpaceUnits(units int) error {
	if units <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("space units is invalid", fmt.Errorf("%d is not greater than 0", units))
	}
	o.spaceUnits = units
	return nil
}

func (o *Order) setStatus(status Status, allocationID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	switch {
	case status.HoldsAllocation() && allocationID == nil:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order must reference an allocation", status),
		)
	case !status.HoldsAllocation() && allocationID != nil:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order must not reference an allocation", status),
		)
	}

	if allocationID != nil {
		if err := allocationID.Validate(); err != nil {
			return err
		}
		id := *allocationID
		o.allocationID = &id
	}

	o.status = status
	return nil
}
