package resource

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrTrainTripIsNotConstructed = errors.New("TrainTrip must be created via NewTrainTrip constructor")

// TrainTrip is a scheduled rail run whose wagons carry space units from the
// departure city to the arrival city. Allocated never exceeds capacity.
type TrainTrip struct {
	id            kernel.UUID
	departureCity kernel.City
	arrivalCity   kernel.City
	departureTime time.Time
	arrivalTime   time.Time
	capacity      int
	allocated     int
	guard         guard.ConstructorGuard
}

// NewTrainTrip creates a trip with nothing allocated yet.
func NewTrainTrip(
	id kernel.UUID,
	departureCity, arrivalCity kernel.City,
	departureTime, arrivalTime time.Time,
	capacity int,
) (*TrainTrip, error) {
	return RestoreTrainTrip(id, departureCity, arrivalCity, departureTime, arrivalTime, capacity, 0)
}

// RestoreTrainTrip reconstructs a trip from storage.
func RestoreTrainTrip(
	id kernel.UUID,
	departureCity, arrivalCity kernel.City,
	departureTime, arrivalTime time.Time,
	capacity, allocated int,
) (*TrainTrip, error) {
	t := &TrainTrip{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		departureCity.Validate(),
		arrivalCity.Validate(),
		validateSchedule(departureTime, arrivalTime),
		validateCapacity(capacity, allocated),
	); err != nil {
		return nil, err
	}

	t.id = id
	t.departureCity = departureCity
	t.arrivalCity = arrivalCity
	t.departureTime = departureTime
	t.arrivalTime = arrivalTime
	t.capacity = capacity
	t.allocated = allocated
	return t, nil
}

func (t *TrainTrip) Validate() error {
	if t == nil {
		return ErrTrainTripIsNotConstructed
	}
	return t.guard.Validate(ErrTrainTripIsNotConstructed)
}

func (t *TrainTrip) ID() kernel.UUID            { return t.id }
func (t *TrainTrip) Kind() Kind                 { return KindTrainTrip }
func (t *TrainTrip) DepartureCity() kernel.City { return t.departureCity }
func (t *TrainTrip) ArrivalCity() kernel.City   { return t.arrivalCity }
func (t *TrainTrip) DepartureTime() time.Time   { return t.departureTime }
func (t *TrainTrip) ArrivalTime() time.Time     { return t.arrivalTime }
func (t *TrainTrip) Capacity() int              { return t.capacity }
func (t *TrainTrip) Allocated() int             { return t.allocated }

func (t *TrainTrip) Remaining() int {
	return t.capacity - t.allocated
}

// Reserve takes amount space units, or nothing at all.
func (t *TrainTrip) Reserve(amount int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount > t.Remaining() {
		return capacityExceeded(KindTrainTrip, t.id, amount, t.Remaining())
	}
	t.allocated += amount
	return nil
}

func (t *TrainTrip) Release(amount int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount > t.allocated {
		return overRelease(KindTrainTrip, amount, t.allocated)
	}
	t.allocated -= amount
	return nil
}

func validateSchedule(departure, arrival time.Time) error {
	if departure.IsZero() || arrival.IsZero() {
		return errs.NewValueIsRequiredError("schedule")
	}
	if !arrival.After(departure) {
		return errs.NewValueIsInvalidErrorWithCause(
			"schedule is invalid",
			fmt.Errorf("arrival %s is not after departure %s", arrival.Format(time.RFC3339), departure.Format(time.RFC3339)),
		)
	}
	return nil
}

func validateCapacity(capacity, used int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid", fmt.Errorf("%d is not greater than 0", capacity))
	}
	if used < 0 || used > capacity {
		return errs.NewValueIsOutOfRangeError("used capacity", used, 0, capacity)
	}
	return nil
}
