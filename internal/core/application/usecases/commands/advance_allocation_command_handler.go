package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/retry"
)

// AdvanceAllocationCommandHandler drives an allocation through dispatch and
// delivery. Completing it frees the truck and the store space.
type AdvanceAllocationCommandHandler struct {
	uowFactory  AllocationUoWFactory
	coordinator services.AllocationCoordinator
	retry       retry.Policy
	logger      *slog.Logger
}

func NewAdvanceAllocationCommandHandler(
	uowFactory AllocationUoWFactory,
	coordinator services.AllocationCoordinator,
	policy retry.Policy,
	logger *slog.Logger,
) AdvanceAllocationCommandHandler {
	return AdvanceAllocationCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		retry:       policy,
		logger:      logger.With("component", "advance_allocation"),
	}
}

func (h AdvanceAllocationCommandHandler) Handle(ctx context.Context, command AdvanceAllocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	err := retry.Do(ctx, h.retry, func(ctx context.Context) error {
		return h.advance(ctx, command)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Allocation advance failed",
			"allocation_id", command.AllocationID(), "next", command.Next(), "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "Allocation advanced",
		"allocation_id", command.AllocationID(), "status", command.Next())
	return nil
}

func (h AdvanceAllocationCommandHandler) advance(ctx context.Context, command AdvanceAllocationCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, resources, err := lockAllocation(ctx, uow, command.AllocationID())
	if err != nil {
		return err
	}

	if err = h.coordinator.Advance(a, resources, command.Next()); err != nil {
		return err
	}

	if err = persistResources(ctx, uow, resources); err != nil {
		return err
	}
	if err = uow.AllocationRepository().Update(ctx, a); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, resources.Order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
