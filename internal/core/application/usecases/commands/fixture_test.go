package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/retry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	tomorrow = kernel.MustDate(2025, time.March, 4)
	eight    = decimal.NewFromInt(8)
)

const orderUnits = 10

// world describes one consistent set of resources. build may be called once
// per transaction attempt; every call returns fresh aggregates with the same ids.
type world struct {
	ids          allocation.Binding
	tripCapacity int
	storeCity    string
}

func newWorld() *world {
	return &world{
		ids: allocation.Binding{
			OrderID:     kernel.NewUUID(),
			TrainTripID: kernel.NewUUID(),
			StoreID:     kernel.NewUUID(),
			TruckID:     kernel.NewUUID(),
			DriverID:    kernel.NewUUID(),
			AssistantID: kernel.NewUUID(),
		},
		tripCapacity: 100,
		storeCity:    "Kandy",
	}
}

func (w *world) build(t *testing.T) services.Resources {
	t.Helper()

	o, err := order.NewOrder(w.ids.OrderID, kernel.MustCity("Kandy"), tomorrow, orderUnits)
	require.NoError(t, err)
	trip, err := resource.NewTrainTrip(w.ids.TrainTripID, kernel.MustCity("Colombo"), kernel.MustCity("Kandy"),
		now, now.Add(3*time.Hour), w.tripCapacity)
	require.NoError(t, err)
	store, err := resource.NewStore(w.ids.StoreID, kernel.MustCity(w.storeCity), 100)
	require.NoError(t, err)
	truck, err := resource.NewTruck(w.ids.TruckID, w.ids.StoreID, 20)
	require.NoError(t, err)
	driver, err := labor.NewWorker(w.ids.DriverID, "Sunil", labor.Driver, w.ids.StoreID)
	require.NoError(t, err)
	assistant, err := labor.NewWorker(w.ids.AssistantID, "Kamal", labor.Assistant, w.ids.StoreID)
	require.NoError(t, err)

	return services.Resources{
		Order:     o,
		TrainTrip: trip,
		Store:     store,
		Truck:     truck,
		Driver:    driver,
		Assistant: assistant,
	}
}

// booked builds the world with an allocation already committed in memory.
func (w *world) booked(t *testing.T) (*allocation.Allocation, services.Resources) {
	t.Helper()

	r := w.build(t)
	a, violations, err := coordinator(t).Commit(kernel.NewUUID(), services.Candidate{Resources: r, Date: tomorrow, Hours: eight})
	require.NoError(t, err)
	require.True(t, violations.OK(), violations.String())
	return a, r
}

// expectLocks expects one locked read of each resource.
func expectLocks(uow *MockUoW, r services.Resources) {
	uow.orders.On("GetForUpdate", mock.Anything, r.Order.ID()).Return(r.Order, nil).Once()
	uow.trips.On("GetForUpdate", mock.Anything, r.TrainTrip.ID()).Return(r.TrainTrip, nil).Once()
	uow.stores.On("GetForUpdate", mock.Anything, r.Store.ID()).Return(r.Store, nil).Once()
	uow.trucks.On("GetForUpdate", mock.Anything, r.Truck.ID()).Return(r.Truck, nil).Once()
	uow.workers.On("GetForUpdate", mock.Anything, r.Driver.ID()).Return(r.Driver, nil).Once()
	uow.workers.On("GetForUpdate", mock.Anything, r.Assistant.ID()).Return(r.Assistant, nil).Once()
}

// expectAllocationLocks expects the snapshot read, the resource locks and the
// allocation lock of lockAllocation.
func expectAllocationLocks(uow *MockUoW, a *allocation.Allocation, r services.Resources) {
	uow.allocations.On("Get", mock.Anything, a.ID()).Return(a, nil).Once()
	expectLocks(uow, r)
	uow.allocations.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
}

// expectWrites expects every resource to be written back once.
func expectWrites(uow *MockUoW, r services.Resources) {
	uow.trips.On("Update", mock.Anything, r.TrainTrip).Return(nil).Once()
	uow.stores.On("Update", mock.Anything, r.Store).Return(nil).Once()
	uow.trucks.On("Update", mock.Anything, r.Truck).Return(nil).Once()
	uow.workers.On("Update", mock.Anything, r.Driver).Return(nil).Once()
	uow.workers.On("Update", mock.Anything, r.Assistant).Return(nil).Once()
}

func coordinator(t *testing.T) services.AllocationCoordinator {
	t.Helper()

	ledger, err := services.NewLaborLedger(kernel.DefaultCalendar(), clock.NewFixed(now))
	require.NoError(t, err)
	return services.NewAllocationCoordinator(services.NewResourceLedger(), ledger)
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func commitCommand(t *testing.T, ids allocation.Binding) commands.CommitAllocationCommand {
	t.Helper()

	cmd, err := commands.NewCommitAllocationCommand(ids, tomorrow, eight)
	require.NoError(t, err)
	return cmd
}
