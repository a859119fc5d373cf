// Package commands contains the operations that change allocation state.
// Every handler follows the same shape: validate the command, open a unit of
// work, lock the rows it touches in a fixed order, apply the domain change,
// persist, commit. Transient storage failures restart the whole sequence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces segregated by what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ResourceRepoFactory interface {
		TrainTripRepository() ports.TrainTripRepository
		StoreRepository() ports.StoreRepository
		TruckRepository() ports.TruckRepository
	}

	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// AllocationUoW spans every aggregate an allocation binds. Used by the
	// commit, cancel and advance handlers.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... lock trip, store, truck, workers in that order
	//
	//   err = uow.Commit(ctx)
	AllocationUoW interface {
		TxManager
		OrderRepoFactory
		ResourceRepoFactory
		WorkerRepoFactory
		AllocationRepoFactory
	}

	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// WorkerUoW is enough for labor bookkeeping that touches no allocation.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
	}

	WorkerUoWFactory interface {
		Create() WorkerUoW
	}
)
