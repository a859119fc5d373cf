package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAdvanceAllocationCommandIsNotConstructed = errors.New(
	"AdvanceAllocationCommand must be created via NewAdvanceAllocationCommand constructor",
)

// AdvanceAllocationCommand moves an allocation to InProgress or Completed.
type AdvanceAllocationCommand struct {
	allocationID kernel.UUID
	next         allocation.Status
	guard        guard.ConstructorGuard
}

func NewAdvanceAllocationCommand(allocationID kernel.UUID, next allocation.Status) (AdvanceAllocationCommand, error) {
	var nextErr error
	if next != allocation.InProgress && next != allocation.Completed {
		nextErr = errs.NewValueIsInvalidErrorWithCause(
			"next status is invalid",
			fmt.Errorf("%s is not %s or %s", next, allocation.InProgress, allocation.Completed),
		)
	}

	if err := errors.Join(allocationID.Validate(), nextErr); err != nil {
		return AdvanceAllocationCommand{}, err
	}

	return AdvanceAllocationCommand{
		allocationID: allocationID,
		next:         next,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceAllocationCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c AdvanceAllocationCommand) Next() allocation.Status {
	return c.next
}

func (c AdvanceAllocationCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceAllocationCommandIsNotConstructed)
}
