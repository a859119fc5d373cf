package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCommitAllocationCommandIsNotConstructed = errors.New(
	"CommitAllocationCommand must be created via NewCommitAllocationCommand constructor",
)

// CommitAllocationCommand asks to bind an order to a train trip, a store, a
// truck, a driver and an assistant for hours on date.
//
// Example:
//
//	cmd, err := NewCommitAllocationCommand(binding, date, decimal.NewFromInt(8))
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CommitAllocationCommand struct {
	binding allocation.Binding
	date    kernel.Date
	hours   decimal.Decimal
	guard   guard.ConstructorGuard
}

func NewCommitAllocationCommand(
	binding allocation.Binding,
	date kernel.Date,
	hours decimal.Decimal,
) (CommitAllocationCommand, error) {
	var hoursErr error
	if !hours.IsPositive() {
		hoursErr = errs.NewValueIsInvalidErrorWithCause("hours is invalid", fmt.Errorf("%s is not greater than 0", hours))
	}

	if err := errors.Join(
		binding.OrderID.Validate(),
		binding.TrainTripID.Validate(),
		binding.StoreID.Validate(),
		binding.TruckID.Validate(),
		binding.DriverID.Validate(),
		binding.AssistantID.Validate(),
		date.Validate(),
		hoursErr,
	); err != nil {
		return CommitAllocationCommand{}, err
	}

	return CommitAllocationCommand{
		binding: binding,
		date:    date,
		hours:   hours,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CommitAllocationCommand) Binding() allocation.Binding {
	return c.binding
}

func (c CommitAllocationCommand) Date() kernel.Date {
	return c.date
}

func (c CommitAllocationCommand) Hours() decimal.Decimal {
	return c.hours
}

func (c CommitAllocationCommand) Validate() error {
	return c.guard.Validate(ErrCommitAllocationCommandIsNotConstructed)
}
