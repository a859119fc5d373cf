package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	colombo = kernel.MustCity("Colombo")
	kandy   = kernel.MustCity("Kandy")
	galle   = kernel.MustCity("Galle")

	// monday is the first day of the test week; "now" is that morning.
	monday = kernel.MustDate(2025, time.March, 3)
	now    = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	t         *testing.T
	ledger    services.LaborLedger
	resources services.ResourceLedger
	candidate services.Candidate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	laborLedger, err := services.NewLaborLedger(kernel.DefaultCalendar(), clock.NewFixed(now))
	require.NoError(t, err)

	store, err := resource.NewStore(kernel.NewUUID(), kandy, 100)
	require.NoError(t, err)

	f := &fixture{t: t, ledger: laborLedger, resources: services.NewResourceLedger()}
	f.candidate = services.Candidate{
		Resources: services.Resources{
			Order:     f.newOrder(60),
			TrainTrip: f.newTrip(kandy, 100),
			Store:     store,
			Truck:     f.newTruck(store.ID()),
			Driver:    f.newWorker(labor.Driver, store.ID()),
			Assistant: f.newWorker(labor.Assistant, store.ID()),
		},
		Date:  monday.AddDays(2),
		Hours: decimal.NewFromInt(5),
	}
	return f
}

func (f *fixture) newOrder(units int) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kandy, monday.AddDays(4), units)
	require.NoError(f.t, err)
	return o
}

func (f *fixture) newTrip(arrival kernel.City, capacity int) *resource.TrainTrip {
	dep := now.Add(24 * time.Hour)
	trip, err := resource.NewTrainTrip(kernel.NewUUID(), colombo, arrival, dep, dep.Add(3*time.Hour), capacity)
	require.NoError(f.t, err)
	return trip
}

func (f *fixture) newTruck(storeID kernel.UUID) *resource.Truck {
	truck, err := resource.NewTruck(kernel.NewUUID(), storeID, 80)
	require.NoError(f.t, err)
	return truck
}

func (f *fixture) newWorker(role labor.Role, storeID kernel.UUID) *labor.Worker {
	w, err := labor.NewWorker(kernel.NewUUID(), role.String()+" "+kernel.NewUUID().String()[:4], role, storeID)
	require.NoError(f.t, err)
	return w
}

// book records an assignment of hours on day without any rule check.
func (f *fixture) book(w *labor.Worker, day kernel.Date, hours int64) kernel.UUID {
	id := kernel.NewUUID()
	require.NoError(f.t, f.ledger.Commit(w, id, day, decimal.NewFromInt(hours)))
	return id
}

func (f *fixture) validator() services.ConstraintValidator {
	return services.NewConstraintValidator(f.resources, f.ledger)
}

func (f *fixture) coordinator() services.AllocationCoordinator {
	return services.NewAllocationCoordinator(f.resources, f.ledger)
}

func mustStore(t *testing.T, id kernel.UUID, capacity int) *resource.Store {
	t.Helper()
	s, err := resource.NewStore(id, kandy, capacity)
	require.NoError(t, err)
	return s
}

func mustStoreIn(t *testing.T, city kernel.City) *resource.Store {
	t.Helper()
	s, err := resource.NewStore(kernel.NewUUID(), city, 100)
	require.NoError(t, err)
	return s
}
