package allocation

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Binding is the set of resources one allocation ties an order to.
type Binding struct {
	OrderID     kernel.UUID
	TrainTripID kernel.UUID
	StoreID     kernel.UUID
	TruckID     kernel.UUID
	DriverID    kernel.UUID
	AssistantID kernel.UUID
}

func (b Binding) validate() error {
	return errors.Join(
		b.OrderID.Validate(),
		b.TrainTripID.Validate(),
		b.StoreID.Validate(),
		b.TruckID.Validate(),
		b.DriverID.Validate(),
		b.AssistantID.Validate(),
	)
}

// Allocation is the durable record binding one order to one train trip,
// store, truck, driver and assistant on a date.
//
// What the allocation holds depends on its status:
//   - Scheduled, InProgress: trip and store capacity, the truck, both workers' hours
//   - Completed: trip capacity and the workers' hours only
//   - Cancelled: nothing
type Allocation struct {
	id         kernel.UUID
	binding    Binding
	date       kernel.Date
	hours      decimal.Decimal
	spaceUnits int
	status     Status
	guard      guard.ConstructorGuard
}

// NewAllocation creates a Scheduled allocation.
func NewAllocation(id kernel.UUID, binding Binding, date kernel.Date, hours decimal.Decimal, spaceUnits int) (*Allocation, error) {
	return RestoreAllocation(id, binding, date, hours, spaceUnits, Scheduled)
}

func RestoreAllocation(
	id kernel.UUID,
	binding Binding,
	date kernel.Date,
	hours decimal.Decimal,
	spaceUnits int,
	status Status,
) (*Allocation, error) {
	var hoursErr, unitsErr error
	if !hours.IsPositive() {
		hoursErr = errs.NewValueIsInvalidErrorWithCause("hours is invalid", fmt.Errorf("%s is not greater than 0", hours))
	}
	if spaceUnits <= 0 {
		unitsErr = errs.NewValueIsInvalidErrorWithCause("space units is invalid", fmt.Errorf("%d is not greater than 0", spaceUnits))
	}

	if err := errors.Join(
		id.Validate(),
		binding.validate(),
		date.Validate(),
		hoursErr,
		unitsErr,
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Allocation{
		id:         id,
		binding:    binding,
		date:       date,
		hours:      hours,
		spaceUnits: spaceUnits,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

func (a *Allocation) ID() kernel.UUID          { return a.id }
func (a *Allocation) Binding() Binding         { return a.binding }
func (a *Allocation) OrderID() kernel.UUID     { return a.binding.OrderID }
func (a *Allocation) TrainTripID() kernel.UUID { return a.binding.TrainTripID }
func (a *Allocation) StoreID() kernel.UUID     { return a.binding.StoreID }
func (a *Allocation) TruckID() kernel.UUID     { return a.binding.TruckID }
func (a *Allocation) DriverID() kernel.UUID    { return a.binding.DriverID }
func (a *Allocation) AssistantID() kernel.UUID { return a.binding.AssistantID }
func (a *Allocation) Date() kernel.Date        { return a.date }
func (a *Allocation) Hours() decimal.Decimal   { return a.hours }
func (a *Allocation) SpaceUnits() int          { return a.spaceUnits }
func (a *Allocation) Status() Status           { return a.status }
func (a *Allocation) IsCancelled() bool        { return a.status == Cancelled }

// HoldsTruckAndStore reports whether the truck and the store space are still
// taken by this allocation.
func (a *Allocation) HoldsTruckAndStore() bool {
	return a.status == Scheduled || a.status == InProgress
}

// Advance moves the allocation one step forward.
func (a *Allocation) Advance(next Status) error {
	s, err := a.status.Advance(next)
	if err != nil {
		return err
	}
	a.status = s
	return nil
}

// Cancel cancels a Scheduled or InProgress allocation. It reports false
// without error when the allocation is already cancelled.
func (a *Allocation) Cancel() (bool, error) {
	if a.status == Cancelled {
		return false, nil
	}
	s, err := a.status.Cancel()
	if err != nil {
		return false, err
	}
	a.status = s
	return true, nil
}
