package postgres_test

import (
	"testing"
	"time"

	adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory *adapter.GormUnitOfWorkFactory
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (s *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(s.T().Context())
	s.Require().NoError(err)
	s.pg = pg
	s.factory = adapter.NewGormUnitOfWorkFactory(pg.DB, 200*time.Millisecond)
}

func (s *UnitOfWorkIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
}

func (s *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	s.Require().NoError(s.pg.Stop(s.T().Context()))
}

func (s *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustCity("Kandy"), kernel.MustDate(2025, time.March, 4), 5)
	s.Require().NoError(err)
	return o
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := s.T().Context()
	o := s.newOrder()
	store, err := resource.NewStore(kernel.NewUUID(), kernel.MustCity("Kandy"), 20)
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.StoreRepository().Add(ctx, store))
	s.Require().NoError(uow.Commit(ctx))

	s.NoError(uow.Rollback(ctx), "rollback after commit does nothing")

	reader := s.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	s.NoError(err)
	_, err = reader.StoreRepository().Get(ctx, store.ID())
	s.NoError(err)
}

func (s *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := s.T().Context()
	o := s.newOrder()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.Rollback(ctx))

	_, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	s.Error(s.factory.Create().Commit(s.T().Context()))
}

func (s *UnitOfWorkIntegrationTestSuite) TestLockWaitBeyondTimeout_IsTransient() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.Require().NoError(s.factory.Create().OrderRepository().Add(ctx, o))

	holder := s.factory.Create()
	s.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.OrderRepository().GetForUpdate(ctx, o.ID())
	s.Require().NoError(err)

	waiter := s.factory.Create()
	s.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()

	_, err = waiter.OrderRepository().GetForUpdate(ctx, o.ID())
	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrTransientStorageFailure)
	s.True(errs.IsRetryable(err))
}

func (s *UnitOfWorkIntegrationTestSuite) TestTrackedAggregates() {
	ctx := s.T().Context()
	o := s.newOrder()

	uow := s.factory.Create().(*adapter.GormUnitOfWork)
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))

	s.Equal([]any{o}, uow.TrackedAggregates())
	s.Require().NoError(uow.Commit(ctx))
}
