package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

type (
	// ProposalReader loads the aggregates of a candidate without locks.
	ProposalReader interface {
		OrderRepository() ports.OrderRepository
		TrainTripRepository() ports.TrainTripRepository
		StoreRepository() ports.StoreRepository
		TruckRepository() ports.TruckRepository
		WorkerRepository() ports.WorkerRepository
	}

	ProposalReaderFactory interface {
		Create() ProposalReader
	}
)

// ProposeAllocationQueryHandler runs the same validator as the commit path
// against the current state. An empty result means a commit made now would
// succeed unless something changes in between.
type ProposeAllocationQueryHandler struct {
	readers   ProposalReaderFactory
	validator services.ConstraintValidator
}

func NewProposeAllocationQueryHandler(
	readers ProposalReaderFactory,
	validator services.ConstraintValidator,
) ProposeAllocationQueryHandler {
	return ProposeAllocationQueryHandler{readers: readers, validator: validator}
}

func (h ProposeAllocationQueryHandler) Handle(
	ctx context.Context,
	query ProposeAllocationQuery,
) (services.Violations, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readers.Create()
	b := query.Binding()

	var r services.Resources
	var err error
	if r.Order, err = reader.OrderRepository().Get(ctx, b.OrderID); err != nil {
		return nil, err
	}
	if r.TrainTrip, err = reader.TrainTripRepository().Get(ctx, b.TrainTripID); err != nil {
		return nil, err
	}
	if r.Store, err = reader.StoreRepository().Get(ctx, b.StoreID); err != nil {
		return nil, err
	}
	if r.Truck, err = reader.TruckRepository().Get(ctx, b.TruckID); err != nil {
		return nil, err
	}
	if r.Driver, r.Assistant, err = loadCrew(ctx, reader.WorkerRepository(), b.DriverID, b.AssistantID); err != nil {
		return nil, err
	}

	violations, err := h.validator.Validate(services.Candidate{
		Resources: r,
		Date:      query.Date(),
		Hours:     query.Hours(),
	})
	if err != nil {
		return nil, err
	}
	if violations == nil {
		violations = services.Violations{}
	}
	return violations, nil
}

// loadCrew reads driver and assistant, sharing one aggregate when both ids
// name the same worker so the validator sees the combined hours.
func loadCrew(
	ctx context.Context,
	workers ports.WorkerRepository,
	driverID, assistantID kernel.UUID,
) (*labor.Worker, *labor.Worker, error) {
	driver, err := workers.Get(ctx, driverID)
	if err != nil {
		return nil, nil, err
	}
	if assistantID.IsEqual(driverID) {
		return driver, driver, nil
	}
	assistant, err := workers.Get(ctx, assistantID)
	if err != nil {
		return nil, nil, err
	}
	return driver, assistant, nil
}
