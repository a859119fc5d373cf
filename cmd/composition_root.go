package cmd

import (
	"log/slog"

	"freight/internal/adapters/in/deliveryevents"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/jobs"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/retry"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	labor       services.LaborLedger
	coordinator services.AllocationCoordinator
	policy      retry.Policy
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	calendar, err := config.Calendar()
	if err != nil {
		return CompositionRoot{}, err
	}
	labor, err := services.NewLaborLedger(calendar, clock.NewSystem())
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, config.DBLockTimeout),
		labor:       labor,
		coordinator: services.NewAllocationCoordinator(services.NewResourceLedger(), labor),
		policy:      config.RetryPolicy(),
		logger:      logger,
	}, nil
}

func (c *CompositionRoot) allocationUoWFactory() commands.AllocationUoWFactory {
	return FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCommitAllocationCommandHandler() commands.CommitAllocationCommandHandler {
	return commands.NewCommitAllocationCommandHandler(c.allocationUoWFactory(), c.coordinator, c.policy, c.logger)
}

func (c *CompositionRoot) CreateCancelAllocationCommandHandler() commands.CancelAllocationCommandHandler {
	return commands.NewCancelAllocationCommandHandler(c.allocationUoWFactory(), c.coordinator, c.policy, c.logger)
}

func (c *CompositionRoot) CreateAdvanceAllocationCommandHandler() commands.AdvanceAllocationCommandHandler {
	return commands.NewAdvanceAllocationCommandHandler(c.allocationUoWFactory(), c.coordinator, c.policy, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.allocationUoWFactory(), c.coordinator, c.policy, c.logger)
}

func (c *CompositionRoot) CreateRollOverWeeklyHoursCommandHandler() commands.RollOverWeeklyHoursCommandHandler {
	var f commands.WorkerUoWFactory = FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRollOverWeeklyHoursCommandHandler(f, c.labor, c.policy, c.logger)
}

func (c *CompositionRoot) CreateListUnallocatedOrdersQueryHandler() queries.ListUnallocatedOrdersQueryHandler {
	return queries.NewListUnallocatedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllocationsByStatusQueryHandler() queries.GetAllocationsByStatusQueryHandler {
	return queries.NewGetAllocationsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateProposeAllocationQueryHandler() queries.ProposeAllocationQueryHandler {
	var f queries.ProposalReaderFactory = FuncProposalReaderFactory(func() queries.ProposalReader {
		return c.uowFactory.Create()
	})
	return queries.NewProposeAllocationQueryHandler(f, c.coordinator.Validator())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		ListUnallocatedOrders:  c.CreateListUnallocatedOrdersQueryHandler(),
		GetAllocationsByStatus: c.CreateGetAllocationsByStatusQueryHandler(),
		ProposeAllocation:      c.CreateProposeAllocationQueryHandler(),
		CommitAllocation:       c.CreateCommitAllocationCommandHandler(),
		CancelAllocation:       c.CreateCancelAllocationCommandHandler(),
		AdvanceAllocation:      c.CreateAdvanceAllocationCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
	})
}

func (c *CompositionRoot) CreateWeekRolloverJob() *jobs.WeekRolloverJob {
	return jobs.NewWeekRolloverJob(
		c.CreateRollOverWeeklyHoursCommandHandler(),
		c.config.WeekRolloverSchedule,
		c.config.TimeZone,
		c.logger,
	)
}

func (c *CompositionRoot) CreateDeliveryEventsSubscriber(client *redis.Client) *deliveryevents.Subscriber {
	return deliveryevents.NewSubscriber(
		client,
		c.config.DeliveryEventsChannel,
		c.CreateAdvanceAllocationCommandHandler(),
		c.CreateCancelAllocationCommandHandler(),
		c.policy,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager(client *redis.Client) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateWeekRolloverJob(), map[string]jobs.Worker{
		"delivery_events": c.CreateDeliveryEventsSubscriber(client),
	}, c.logger)
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

type FuncProposalReaderFactory func() queries.ProposalReader

func (f FuncProposalReaderFactory) Create() queries.ProposalReader {
	return f()
}
