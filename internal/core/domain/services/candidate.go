package services

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Resources are the loaded aggregates one allocation binds together.
type Resources struct {
	Order     *order.Order
	TrainTrip *resource.TrainTrip
	Store     *resource.Store
	Truck     *resource.Truck
	Driver    *labor.Worker
	Assistant *labor.Worker
}

func (r Resources) validate() error {
	var driverErr, assistantErr error
	if r.Driver == nil {
		driverErr = errs.NewValueIsRequiredError("driver")
	} else {
		driverErr = r.Driver.Validate()
	}
	if r.Assistant == nil {
		assistantErr = errs.NewValueIsRequiredError("assistant")
	} else {
		assistantErr = r.Assistant.Validate()
	}

	return errors.Join(
		r.Order.Validate(),
		r.TrainTrip.Validate(),
		r.Store.Validate(),
		r.Truck.Validate(),
		driverErr,
		assistantErr,
	)
}

// Binding returns the ids an allocation of these resources records.
func (r Resources) Binding() allocation.Binding {
	return allocation.Binding{
		OrderID:     r.Order.ID(),
		TrainTripID: r.TrainTrip.ID(),
		StoreID:     r.Store.ID(),
		TruckID:     r.Truck.ID(),
		DriverID:    r.Driver.ID(),
		AssistantID: r.Assistant.ID(),
	}
}

// matches checks that these are the resources a persisted allocation is bound to.
func (r Resources) matches(a *allocation.Allocation) error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.Binding() != a.Binding() {
		return errs.NewValueIsInvalidErrorWithCause(
			"resources are invalid",
			fmt.Errorf("loaded resources do not match allocation %s", a.ID()),
		)
	}
	return nil
}

// Candidate is a proposed allocation: the resources plus when and for how long.
type Candidate struct {
	Resources
	Date  kernel.Date
	Hours decimal.Decimal
}

// Validate checks that the candidate is well formed. It says nothing about
// business rules; that is the ConstraintValidator's job.
func (c Candidate) Validate() error {
	var hoursErr error
	if !c.Hours.IsPositive() {
		hoursErr = errs.NewValueIsInvalidErrorWithCause("hours is invalid", fmt.Errorf("%s is not greater than 0", c.Hours))
	}
	return errors.Join(c.Resources.validate(), c.Date.Validate(), hoursErr)
}
