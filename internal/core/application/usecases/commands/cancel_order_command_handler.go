package commands

import (
	"context"
	"errors"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/retry"
)

var errOrderAllocationChanged = errors.New("order allocation changed while locking")

// CancelOrderCommandHandler cancels an order. A Pending order is cancelled
// directly; an allocated or in-transit order has its allocation cancelled
// first, in the same transaction. Delivered orders cannot be cancelled and
// cancelling a cancelled order is a no-op.
type CancelOrderCommandHandler struct {
	uowFactory  AllocationUoWFactory
	coordinator services.AllocationCoordinator
	retry       retry.Policy
	logger      *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory AllocationUoWFactory,
	coordinator services.AllocationCoordinator,
	policy retry.Policy,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		retry:       policy,
		logger:      logger.With("component", "cancel_order"),
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	err := retry.Do(ctx, h.retry, func(ctx context.Context) error {
		return h.cancel(ctx, command.OrderID())
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Order cancel failed", "order_id", command.OrderID(), "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "Order cancelled", "order_id", command.OrderID())
	return nil
}

func (h CancelOrderCommandHandler) cancel(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Unlocked read to learn whether there is an allocation to lock first.
	snapshot, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	if snapshot.Status() == order.Cancelled {
		return nil
	}

	if allocationID := snapshot.AllocationID(); allocationID != nil {
		return h.cancelAllocated(ctx, uow, *allocationID)
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if o.AllocationID() != nil {
		return errs.NewTransientStorageError("cancel order", errOrderAllocationChanged)
	}
	if o.Status() == order.Cancelled {
		return nil
	}
	if err = o.Cancel(); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h CancelOrderCommandHandler) cancelAllocated(ctx context.Context, uow AllocationUoW, allocationID kernel.UUID) error {
	a, resources, err := lockAllocation(ctx, uow, allocationID)
	if err != nil {
		return err
	}

	current := resources.Order.AllocationID()
	if current == nil || !current.IsEqual(allocationID) {
		return errs.NewTransientStorageError("cancel order", errOrderAllocationChanged)
	}

	if _, err = h.coordinator.Cancel(a, resources, true); err != nil {
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
