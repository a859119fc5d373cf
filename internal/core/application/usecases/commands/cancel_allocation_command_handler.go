package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/retry"
)

// CancelAllocationCommandHandler reverses an allocation: trip and store
// capacity, the truck and both workers' hours are given back in the same
// transaction that marks the allocation Cancelled. Cancelling an already
// cancelled allocation succeeds and reports false.
type CancelAllocationCommandHandler struct {
	uowFactory  AllocationUoWFactory
	coordinator services.AllocationCoordinator
	retry       retry.Policy
	logger      *slog.Logger
}

func NewCancelAllocationCommandHandler(
	uowFactory AllocationUoWFactory,
	coordinator services.AllocationCoordinator,
	policy retry.Policy,
	logger *slog.Logger,
) CancelAllocationCommandHandler {
	return CancelAllocationCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		retry:       policy,
		logger:      logger.With("component", "cancel_allocation"),
	}
}

// Handle reports whether anything was cancelled.
func (h CancelAllocationCommandHandler) Handle(ctx context.Context, command CancelAllocationCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	var cancelled bool
	err := retry.Do(ctx, h.retry, func(ctx context.Context) error {
		var err error
		cancelled, err = h.cancel(ctx, command)
		return err
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Allocation cancel failed",
			"allocation_id", command.AllocationID(), "error", err)
		return false, err
	}

	if cancelled {
		h.logger.InfoContext(ctx, "Allocation cancelled",
			"allocation_id", command.AllocationID(), "customer_initiated", command.CustomerInitiated())
	}
	return cancelled, nil
}

func (h CancelAllocationCommandHandler) cancel(ctx context.Context, command CancelAllocationCommand) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, resources, err := lockAllocation(ctx, uow, command.AllocationID())
	if err != nil {
		return false, err
	}

	changed, err := h.coordinator.Cancel(a, resources, command.CustomerInitiated())
	if err != nil || !changed {
		return false, err
	}

	if err = persistResources(ctx, uow, resources); err != nil {
		return false, err
	}
	if err = uow.AllocationRepository().Update(ctx, a); err != nil {
		return false, err
	}
	if err = uow.OrderRepository().Update(ctx, resources.Order); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
