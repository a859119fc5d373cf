package commands

import (
	"context"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/services"
)

// lockResources loads every aggregate of the binding with its row lock held,
// always in the same order: order, train trip, store, truck, then workers by
// ascending id. Two transactions contending for overlapping rows therefore
// queue instead of deadlocking.
//
// The same worker named as driver and assistant is loaded once and shared.
func lockResources(ctx context.Context, uow AllocationUoW, b allocation.Binding) (services.Resources, error) {
	var r services.Resources
	var err error

	if r.Order, err = uow.OrderRepository().GetForUpdate(ctx, b.OrderID); err != nil {
		return services.Resources{}, err
	}
	if r.TrainTrip, err = uow.TrainTripRepository().GetForUpdate(ctx, b.TrainTripID); err != nil {
		return services.Resources{}, err
	}
	if r.Store, err = uow.StoreRepository().GetForUpdate(ctx, b.StoreID); err != nil {
		return services.Resources{}, err
	}
	if r.Truck, err = uow.TruckRepository().GetForUpdate(ctx, b.TruckID); err != nil {
		return services.Resources{}, err
	}

	workers := uow.WorkerRepository()
	first, second := b.DriverID, b.AssistantID
	if second.Less(first) {
		first, second = second, first
	}

	locked := make(map[kernel.UUID]*labor.Worker, 2)
	for _, id := range []kernel.UUID{first, second} {
		if _, ok := locked[id]; ok {
			continue
		}
		w, getErr := workers.GetForUpdate(ctx, id)
		if getErr != nil {
			return services.Resources{}, getErr
		}
		locked[id] = w
	}

	r.Driver = locked[b.DriverID]
	r.Assistant = locked[b.AssistantID]
	return r, nil
}

// lockAllocation locks everything an existing allocation is bound to and then
// the allocation row itself, which comes last in the lock order.
func lockAllocation(
	ctx context.Context,
	uow AllocationUoW,
	id kernel.UUID,
) (*allocation.Allocation, services.Resources, error) {
	repo := uow.AllocationRepository()

	// The binding never changes, so an unlocked read is enough to know what to lock.
	snapshot, err := repo.Get(ctx, id)
	if err != nil {
		return nil, services.Resources{}, err
	}

	r, err := lockResources(ctx, uow, snapshot.Binding())
	if err != nil {
		return nil, services.Resources{}, err
	}

	a, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, services.Resources{}, err
	}
	return a, r, nil
}

// persistResources writes back the aggregates a coordinator call may have
// changed, stopping at the first failure. A worker serving as both driver and
// assistant is written once.
func persistResources(ctx context.Context, uow AllocationUoW, r services.Resources) error {
	if err := uow.TrainTripRepository().Update(ctx, r.TrainTrip); err != nil {
		return err
	}
	if err := uow.StoreRepository().Update(ctx, r.Store); err != nil {
		return err
	}
	if err := uow.TruckRepository().Update(ctx, r.Truck); err != nil {
		return err
	}

	workers := uow.WorkerRepository()
	if err := workers.Update(ctx, r.Driver); err != nil {
		return err
	}
	if r.Assistant != r.Driver {
		return workers.Update(ctx, r.Assistant)
	}
	return nil
}
