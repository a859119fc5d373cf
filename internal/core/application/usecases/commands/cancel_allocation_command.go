package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCancelAllocationCommandIsNotConstructed = errors.New(
	"CancelAllocationCommand must be created via NewCancelAllocationCommand constructor",
)

// CancelAllocationCommand cancels an allocation. When the customer withdrew
// the order it is cancelled too; otherwise the order returns to Pending.
type CancelAllocationCommand struct {
	allocationID      kernel.UUID
	customerInitiated bool
	guard             guard.ConstructorGuard
}

func NewCancelAllocationCommand(allocationID kernel.UUID, customerInitiated bool) (CancelAllocationCommand, error) {
	if err := allocationID.Validate(); err != nil {
		return CancelAllocationCommand{}, err
	}
	return CancelAllocationCommand{
		allocationID:      allocationID,
		customerInitiated: customerInitiated,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CancelAllocationCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c CancelAllocationCommand) CustomerInitiated() bool {
	return c.customerInitiated
}

func (c CancelAllocationCommand) Validate() error {
	return c.guard.Validate(ErrCancelAllocationCommandIsNotConstructed)
}
