package queries

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProposeAllocationQueryIsNotConstructed = errors.New(
	"ProposeAllocationQuery must be created via NewProposeAllocationQuery constructor",
)

// ProposeAllocationQuery asks whether a candidate allocation would be
// accepted right now, without reserving anything.
type ProposeAllocationQuery struct {
	binding allocation.Binding
	date    kernel.Date
	hours   decimal.Decimal
	guard   guard.ConstructorGuard
}

func NewProposeAllocationQuery(
	binding allocation.Binding,
	date kernel.Date,
	hours decimal.Decimal,
) (ProposeAllocationQuery, error) {
	var hoursErr error
	if !hours.IsPositive() {
		hoursErr = errs.NewValueIsInvalidErrorWithCause("hours is invalid", fmt.Errorf("%s is not greater than 0", hours))
	}

	if err := errors.Join(
		binding.OrderID.Validate(),
		binding.TrainTripID.Validate(),
		binding.StoreID.Validate(),
		binding.TruckID.Validate(),
		binding.DriverID.Validate(),
		binding.AssistantID.Validate(),
		date.Validate(),
		hoursErr,
	); err != nil {
		return ProposeAllocationQuery{}, err
	}

	return ProposeAllocationQuery{
		binding: binding,
		date:    date,
		hours:   hours,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ProposeAllocationQuery) Binding() allocation.Binding {
	return q.binding
}

func (q ProposeAllocationQuery) Date() kernel.Date {
	return q.date
}

func (q ProposeAllocationQuery) Hours() decimal.Decimal {
	return q.hours
}

func (q ProposeAllocationQuery) Validate() error {
	return q.guard.Validate(ErrProposeAllocationQueryIsNotConstructed)
}
