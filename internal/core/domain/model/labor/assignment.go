package labor

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Assignment is one entry of a worker's history: the worker is booked for
// hours on date by a non-cancelled allocation.
type Assignment struct {
	allocationID kernel.UUID
	date         kernel.Date
	hours        decimal.Decimal
}

func NewAssignment(allocationID kernel.UUID, date kernel.Date, hours decimal.Decimal) (Assignment, error) {
	var hoursErr error
	if !hours.IsPositive() {
		hoursErr = errs.NewValueIsInvalidErrorWithCause("hours is invalid", fmt.Errorf("%s is not greater than 0", hours))
	}

	if err := errors.Join(allocationID.Validate(), date.Validate(), hoursErr); err != nil {
		return Assignment{}, err
	}

	return Assignment{allocationID: allocationID, date: date, hours: hours}, nil
}

func (a Assignment) AllocationID() kernel.UUID {
	return a.allocationID
}

func (a Assignment) Date() kernel.Date {
	return a.date
}

func (a Assignment) Hours() decimal.Decimal {
	return a.hours
}
