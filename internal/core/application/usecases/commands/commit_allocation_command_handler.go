package commands

import (
	"context"
	"fmt"
	"log/slog"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/retry"
)

// CommitAllocationResult is either a committed allocation or the violations
// that stopped it. Violations are business outcomes, not errors.
type CommitAllocationResult struct {
	Allocation *allocation.Allocation
	Violations services.Violations
}

func (r CommitAllocationResult) Committed() bool {
	return r.Allocation != nil
}

// CommitAllocationCommandHandler commits allocations transactionally.
//
// The handler locks every row the allocation touches, re-validates the
// candidate against the locked state and, only if nothing is violated,
// reserves capacity, books labor, claims the truck and writes the allocation
// and the order in the same transaction. When two commits race for the last
// capacity, the one that locks second sees the first's reservation and is
// answered with CapacityExceeded.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errs.IsRetryable(err):
//	    // storage stayed contended; try again later
//	case err != nil:
//	    return err
//	case !result.Committed():
//	    log.Println(result.Violations)
//	}
type CommitAllocationCommandHandler struct {
	uowFactory  AllocationUoWFactory
	coordinator services.AllocationCoordinator
	retry       retry.Policy
	logger      *slog.Logger
}

func NewCommitAllocationCommandHandler(
	uowFactory AllocationUoWFactory,
	coordinator services.AllocationCoordinator,
	policy retry.Policy,
	logger *slog.Logger,
) CommitAllocationCommandHandler {
	return CommitAllocationCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		retry:       policy,
		logger:      logger.With("component", "commit_allocation"),
	}
}

func (h CommitAllocationCommandHandler) Handle(
	ctx context.Context,
	command CommitAllocationCommand,
) (CommitAllocationResult, error) {
	if err := command.Validate(); err != nil {
		return CommitAllocationResult{}, err
	}

	// One id for every attempt, so a retried commit is the same allocation.
	id := kernel.NewUUID()
	attempt := 0

	var result CommitAllocationResult
	err := retry.Do(ctx, h.retry, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			h.logger.InfoContext(ctx, "Retrying allocation commit",
				"order_id", command.Binding().OrderID, "attempt", attempt)
		}

		var err error
		result, err = h.commit(ctx, id, command)
		return err
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Allocation commit failed",
			"order_id", command.Binding().OrderID, "error", err)
		return CommitAllocationResult{}, err
	}

	if result.Committed() {
		h.logger.InfoContext(ctx, "Allocation committed",
			"allocation_id", id, "order_id", command.Binding().OrderID, "date", command.Date())
	} else {
		h.logger.InfoContext(ctx, "Allocation rejected",
			"order_id", command.Binding().OrderID, "violations", fmt.Sprint(result.Violations.Codes()))
	}
	return result, nil
}

func (h CommitAllocationCommandHandler) commit(
	ctx context.Context,
	id kernel.UUID,
	command CommitAllocationCommand,
) (CommitAllocationResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CommitAllocationResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	resources, err := lockResources(ctx, uow, command.Binding())
	if err != nil {
		return CommitAllocationResult{}, err
	}

	candidate := services.Candidate{
		Resources: resources,
		Date:      command.Date(),
		Hours:     command.Hours(),
	}

	a, violations, err := h.coordinator.Commit(id, candidate)
	if err != nil {
		return CommitAllocationResult{}, err
	}
	if !violations.OK() {
		return CommitAllocationResult{Violations: violations}, nil
	}

	if err = persistResources(ctx, uow, resources); err != nil {
		return CommitAllocationResult{}, err
	}
	if err = uow.AllocationRepository().Add(ctx, a); err != nil {
		return CommitAllocationResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, resources.Order); err != nil {
		return CommitAllocationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CommitAllocationResult{}, err
	}

	return CommitAllocationResult{Allocation: a}, nil
}
