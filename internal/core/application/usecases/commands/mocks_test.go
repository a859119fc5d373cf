package commands_test

import (
	"context"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPending(ctx context.Context, city *kernel.City) ([]*order.Order, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTrainTripRepository struct{ mock.Mock }

func (m *MockTrainTripRepository) Add(ctx context.Context, t *resource.TrainTrip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTrainTripRepository) Update(ctx context.Context, t *resource.TrainTrip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTrainTripRepository) Get(ctx context.Context, id kernel.UUID) (*resource.TrainTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resource.TrainTrip), args.Error(1)
}

func (m *MockTrainTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.TrainTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resource.TrainTrip), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, s *resource.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *resource.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resource.Store), args.Error(1)
}

func (m *MockStoreRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resource.Store), args.Error(1)
}

type MockTruckRepository struct{ mock.Mock }

func (m *MockTruckRepository) Add(ctx context.Context, t *resource.Truck) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTruckRepository) Update(ctx context.Context, t *resource.Truck) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTruckRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resource.Truck), args.Error(1)
}

func (m *MockTruckRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*resource.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resource.Truck), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, w *labor.Worker) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkerRepository) Update(ctx context.Context, w *labor.Worker) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*labor.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labor.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*labor.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labor.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, a *allocation.Allocation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAllocationRepository) Update(ctx context.Context, a *allocation.Allocation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) ListByStatus(
	ctx context.Context,
	statuses ...allocation.Status,
) ([]*allocation.Allocation, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*allocation.Allocation), args.Error(1)
}

// MockUoW serves both AllocationUoW and WorkerUoW.
type MockUoW struct {
	mock.Mock
	orders      *MockOrderRepository
	trips       *MockTrainTripRepository
	stores      *MockStoreRepository
	trucks      *MockTruckRepository
	workers     *MockWorkerRepository
	allocations *MockAllocationRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		trips:       new(MockTrainTripRepository),
		stores:      new(MockStoreRepository),
		trucks:      new(MockTruckRepository),
		workers:     new(MockWorkerRepository),
		allocations: new(MockAllocationRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) TrainTripRepository() ports.TrainTripRepository   { return m.trips }
func (m *MockUoW) StoreRepository() ports.StoreRepository           { return m.stores }
func (m *MockUoW) TruckRepository() ports.TruckRepository           { return m.trucks }
func (m *MockUoW) WorkerRepository() ports.WorkerRepository         { return m.workers }
func (m *MockUoW) AllocationRepository() ports.AllocationRepository { return m.allocations }

// expectTx allows Begin and Rollback on every attempt.
func (m *MockUoW) expectTx() {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil)
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.trips.AssertExpectations(t)
	m.stores.AssertExpectations(t)
	m.trucks.AssertExpectations(t)
	m.workers.AssertExpectations(t)
	m.allocations.AssertExpectations(t)
}

type allocationUoWFactory struct{ uow *MockUoW }

func (f allocationUoWFactory) Create() commands.AllocationUoW { return f.uow }

type workerUoWFactory struct{ uow *MockUoW }

func (f workerUoWFactory) Create() commands.WorkerUoW { return f.uow }
