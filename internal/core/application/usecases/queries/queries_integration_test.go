package queries_test

import (
	"testing"
	"time"

	adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var (
	now      = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	tomorrow = kernel.MustDate(2025, time.March, 4)
	eight    = decimal.NewFromInt(8)
)

type readerFactory struct {
	factory *adapter.GormUnitOfWorkFactory
}

func (f readerFactory) Create() queries.ProposalReader {
	return f.factory.Create()
}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg  *pgtest.Database
	uow ports.UnitOfWork

	validator services.ConstraintValidator
	readers   readerFactory
}

func TestQueriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (s *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(s.T().Context())
	s.Require().NoError(err)
	s.pg = pg

	ledger, err := services.NewLaborLedger(kernel.DefaultCalendar(), clock.NewFixed(now))
	s.Require().NoError(err)
	s.validator = services.NewConstraintValidator(services.NewResourceLedger(), ledger)
	s.readers = readerFactory{factory: adapter.NewGormUnitOfWorkFactory(pg.DB, time.Second)}
}

func (s *QueriesIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
	s.uow = s.readers.factory.Create()
}

func (s *QueriesIntegrationTestSuite) TearDownSuite() {
	s.Require().NoError(s.pg.Stop(s.T().Context()))
}

func (s *QueriesIntegrationTestSuite) addOrder(city string, date kernel.Date, units int) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustCity(city), date, units)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.OrderRepository().Add(s.T().Context(), o))
	return o
}

// seed stores a consistent set of resources in Kandy and returns their ids.
func (s *QueriesIntegrationTestSuite) seed(tripCapacity int) allocation.Binding {
	ctx := s.T().Context()
	o := s.addOrder("Kandy", tomorrow, 10)

	trip, err := resource.NewTrainTrip(kernel.NewUUID(), kernel.MustCity("Colombo"), kernel.MustCity("Kandy"),
		now, now.Add(3*time.Hour), tripCapacity)
	s.Require().NoError(err)
	store, err := resource.NewStore(kernel.NewUUID(), kernel.MustCity("Kandy"), 100)
	s.Require().NoError(err)
	truck, err := resource.NewTruck(kernel.NewUUID(), store.ID(), 20)
	s.Require().NoError(err)
	driver, err := labor.NewWorker(kernel.NewUUID(), "Sunil", labor.Driver, store.ID())
	s.Require().NoError(err)
	assistant, err := labor.NewWorker(kernel.NewUUID(), "Kamal", labor.Assistant, store.ID())
	s.Require().NoError(err)

	s.Require().NoError(s.uow.TrainTripRepository().Add(ctx, trip))
	s.Require().NoError(s.uow.StoreRepository().Add(ctx, store))
	s.Require().NoError(s.uow.TruckRepository().Add(ctx, truck))
	s.Require().NoError(s.uow.WorkerRepository().Add(ctx, driver))
	s.Require().NoError(s.uow.WorkerRepository().Add(ctx, assistant))

	return allocation.Binding{
		OrderID:     o.ID(),
		TrainTripID: trip.ID(),
		StoreID:     store.ID(),
		TruckID:     truck.ID(),
		DriverID:    driver.ID(),
		AssistantID: assistant.ID(),
	}
}

func (s *QueriesIntegrationTestSuite) TestListUnallocatedOrders_ReturnsPendingByRequiredDate() {
	ctx := s.T().Context()
	later := s.addOrder("Kandy", tomorrow.AddDays(2), 5)
	sooner := s.addOrder("Galle", tomorrow, 7)
	cancelled := s.addOrder("Kandy", tomorrow, 3)
	s.Require().NoError(cancelled.Cancel())
	s.Require().NoError(s.uow.OrderRepository().Update(ctx, cancelled))

	query, err := queries.NewListUnallocatedOrdersQuery(nil)
	s.Require().NoError(err)

	orders, err := queries.NewListUnallocatedOrdersQueryHandler(s.pg.DB).Handle(ctx, query)

	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(sooner.ID(), orders[0].ID)
	s.Equal("Galle", orders[0].Destination)
	s.True(tomorrow.IsEqual(orders[0].RequiredDate))
	s.Equal(7, orders[0].SpaceUnits)
	s.Equal(later.ID(), orders[1].ID)
}

func (s *QueriesIntegrationTestSuite) TestListUnallocatedOrders_FiltersByCityIgnoringCase() {
	ctx := s.T().Context()
	kandy := s.addOrder("Kandy", tomorrow, 5)
	s.addOrder("Galle", tomorrow, 7)

	city := kernel.MustCity("  kandy ")
	query, err := queries.NewListUnallocatedOrdersQuery(&city)
	s.Require().NoError(err)

	orders, err := queries.NewListUnallocatedOrdersQueryHandler(s.pg.DB).Handle(ctx, query)

	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(kandy.ID(), orders[0].ID)
}

func (s *QueriesIntegrationTestSuite) TestListUnallocatedOrders_EmptyBacklog() {
	query, err := queries.NewListUnallocatedOrdersQuery(nil)
	s.Require().NoError(err)

	orders, err := queries.NewListUnallocatedOrdersQueryHandler(s.pg.DB).Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.NotNil(orders)
	s.Empty(orders)
}

func (s *QueriesIntegrationTestSuite) TestGetAllocationsByStatus_FiltersAndOrders() {
	ctx := s.T().Context()
	repo := s.uow.AllocationRepository()

	newAllocation := func(day int) *allocation.Allocation {
		a, err := allocation.NewAllocation(kernel.NewUUID(), allocation.Binding{
			OrderID:     kernel.NewUUID(),
			TrainTripID: kernel.NewUUID(),
			StoreID:     kernel.NewUUID(),
			TruckID:     kernel.NewUUID(),
			DriverID:    kernel.NewUUID(),
			AssistantID: kernel.NewUUID(),
		}, kernel.MustDate(2025, time.March, day), decimal.RequireFromString("6.5"), 12)
		s.Require().NoError(err)
		return a
	}

	late := newAllocation(9)
	early := newAllocation(5)
	running := newAllocation(6)
	s.Require().NoError(running.Advance(allocation.InProgress))
	s.Require().NoError(repo.Add(ctx, late))
	s.Require().NoError(repo.Add(ctx, early))
	s.Require().NoError(repo.Add(ctx, running))

	query, err := queries.NewGetAllocationsByStatusQuery(allocation.Scheduled)
	s.Require().NoError(err)
	views, err := queries.NewGetAllocationsByStatusQueryHandler(s.pg.DB).Handle(ctx, query)

	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(early.ID(), views[0].ID)
	s.Equal(early.Binding(), views[0].Binding)
	s.True(decimal.RequireFromString("6.5").Equal(views[0].Hours))
	s.Equal(12, views[0].SpaceUnits)
	s.Equal(allocation.Scheduled, views[0].Status)
	s.Equal(late.ID(), views[1].ID)

	live, err := queries.NewGetAllocationsByStatusQuery()
	s.Require().NoError(err)
	views, err = queries.NewGetAllocationsByStatusQueryHandler(s.pg.DB).Handle(ctx, live)

	s.Require().NoError(err)
	s.Len(views, 3)
}

func (s *QueriesIntegrationTestSuite) TestProposeAllocation_AcceptsValidCandidate() {
	b := s.seed(100)
	query, err := queries.NewProposeAllocationQuery(b, tomorrow, eight)
	s.Require().NoError(err)

	violations, err := queries.NewProposeAllocationQueryHandler(s.readers, s.validator).Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.True(violations.OK())
}

func (s *QueriesIntegrationTestSuite) TestProposeAllocation_ReportsViolationsWithoutReserving() {
	ctx := s.T().Context()
	b := s.seed(5)
	query, err := queries.NewProposeAllocationQuery(b, tomorrow, eight)
	s.Require().NoError(err)

	violations, err := queries.NewProposeAllocationQueryHandler(s.readers, s.validator).Handle(ctx, query)

	s.Require().NoError(err)
	s.True(violations.Has(services.CapacityExceeded))

	trip, err := s.uow.TrainTripRepository().Get(ctx, b.TrainTripID)
	s.Require().NoError(err)
	s.Equal(0, trip.Allocated())
}

func (s *QueriesIntegrationTestSuite) TestProposeAllocation_UnknownOrder() {
	b := s.seed(100)
	b.OrderID = kernel.NewUUID()
	query, err := queries.NewProposeAllocationQuery(b, tomorrow, eight)
	s.Require().NoError(err)

	_, err = queries.NewProposeAllocationQueryHandler(s.readers, s.validator).Handle(s.T().Context(), query)

	s.Require().Error(err)
}
