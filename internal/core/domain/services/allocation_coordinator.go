package services

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/resource"
)

// AllocationCoordinator applies allocation lifecycle changes to a set of
// loaded aggregates. It owns the ledgers and the validator; the application
// layer owns the transaction around it and persists whatever it changed.
//
// On error the aggregates may be partially modified and must be discarded,
// which the surrounding transaction rollback does.
type AllocationCoordinator struct {
	validator ConstraintValidator
	resources ResourceLedger
	labor     LaborLedger
}

func NewAllocationCoordinator(resources ResourceLedger, labor LaborLedger) AllocationCoordinator {
	return AllocationCoordinator{
		validator: NewConstraintValidator(resources, labor),
		resources: resources,
		labor:     labor,
	}
}

func (c AllocationCoordinator) Validator() ConstraintValidator {
	return c.validator
}

func (c AllocationCoordinator) Labor() LaborLedger {
	return c.labor
}

// Commit validates the candidate against the aggregates as they are now and,
// if every rule holds, reserves trip and store capacity, books both workers,
// claims the truck, creates the Scheduled allocation and marks the order
// Allocated. With any violation nothing is changed.
func (c AllocationCoordinator) Commit(id kernel.UUID, candidate Candidate) (*allocation.Allocation, Violations, error) {
	violations, err := c.validator.Validate(candidate)
	if err != nil {
		return nil, nil, err
	}
	if !violations.OK() {
		return nil, violations, nil
	}

	units := candidate.Order.SpaceUnits()
	a, err := allocation.NewAllocation(id, candidate.Binding(), candidate.Date, candidate.Hours, units)
	if err != nil {
		return nil, nil, err
	}

	for _, step := range []struct {
		r      resource.Reservable
		amount int
	}{
		{candidate.TrainTrip, units},
		{candidate.Store, units},
		{candidate.Truck, 1},
	} {
		if _, err := c.resources.Reserve(step.r, step.amount); err != nil {
			var violation Violation
			if errors.As(err, &violation) {
				return nil, Violations{violation}, nil
			}
			return nil, nil, err
		}
	}

	if err := errors.Join(
		c.labor.Commit(candidate.Driver, id, candidate.Date, candidate.Hours),
		c.labor.Commit(candidate.Assistant, id, candidate.Date, candidate.Hours),
	); err != nil {
		return nil, nil, err
	}

	if err := candidate.Order.Allocate(id); err != nil {
		return nil, nil, err
	}

	return a, nil, nil
}

// Cancel reverses everything the allocation still holds and cancels it. The
// order goes back to Pending, or to Cancelled when the customer withdrew it.
// Cancelling a cancelled allocation changes nothing and reports false;
// a Completed allocation cannot be cancelled.
func (c AllocationCoordinator) Cancel(a *allocation.Allocation, r Resources, customerInitiated bool) (bool, error) {
	if a.IsCancelled() {
		return false, nil
	}
	if err := r.matches(a); err != nil {
		return false, err
	}

	heldTruckAndStore := a.HoldsTruckAndStore()
	changed, err := a.Cancel()
	if err != nil || !changed {
		return false, err
	}

	releases := []error{
		c.resources.Release(r.TrainTrip, NewReservation(resource.KindTrainTrip, a.TrainTripID(), a.SpaceUnits())),
	}
	if heldTruckAndStore {
		releases = append(releases, c.releaseTruckAndStore(a, r))
	}
	releases = append(releases,
		c.labor.Reverse(r.Driver, a.ID()),
		c.labor.Reverse(r.Assistant, a.ID()),
	)
	if err := errors.Join(releases...); err != nil {
		return false, err
	}

	if customerInitiated {
		err = r.Order.Cancel()
	} else {
		err = r.Order.Release()
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Advance moves the allocation one step forward and drives the order along:
// InProgress dispatches it, Completed delivers it and frees the truck and the
// store space. Trip capacity and labor hours stay booked.
func (c AllocationCoordinator) Advance(a *allocation.Allocation, r Resources, next allocation.Status) error {
	if err := r.matches(a); err != nil {
		return err
	}
	if err := a.Advance(next); err != nil {
		return err
	}

	switch next {
	case allocation.InProgress:
		return r.Order.Dispatch()
	case allocation.Completed:
		if err := c.releaseTruckAndStore(a, r); err != nil {
			return err
		}
		return r.Order.Deliver()
	default:
		return fmt.Errorf("unexpected allocation status %s", next)
	}
}

func (c AllocationCoordinator) releaseTruckAndStore(a *allocation.Allocation, r Resources) error {
	return errors.Join(
		c.resources.Release(r.Store, NewReservation(resource.KindStore, a.StoreID(), a.SpaceUnits())),
		c.resources.Release(r.Truck, NewReservation(resource.KindTruck, a.TruckID(), 1)),
	)
}
