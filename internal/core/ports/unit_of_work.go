package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction. Repositories obtained after Begin
// run inside it; row locks taken through GetForUpdate are held until Commit
// or Rollback.
type UnitOfWork interface {
	// Begin starts the transaction. Lock waits inside it are bounded.
	Begin(ctx context.Context) error

	// Commit commits the transaction. Serialization failures and deadlocks
	// surface as errs.ErrTransientStorageFailure.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit is harmless.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TrainTripRepository() TrainTripRepository
	StoreRepository() StoreRepository
	TruckRepository() TruckRepository
	WorkerRepository() WorkerRepository
	AllocationRepository() AllocationRepository
}
