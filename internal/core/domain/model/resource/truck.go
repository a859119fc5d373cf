package resource

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrTruckIsNotConstructed = errors.New("Truck must be created via NewTruck constructor")

// truckUnits is the amount a truck reservation takes: the whole truck.
const truckUnits = 1

// Truck is a last-mile delivery vehicle based at a home store.
// As a Reservable it has one unit, taken while the truck is InUse.
type Truck struct {
	id          kernel.UUID
	homeStoreID kernel.UUID
	capacity    int
	status      TruckStatus
	guard       guard.ConstructorGuard
}

func NewTruck(id, homeStoreID kernel.UUID, capacity int) (*Truck, error) {
	return RestoreTruck(id, homeStoreID, capacity, TruckAvailable)
}

func RestoreTruck(id, homeStoreID kernel.UUID, capacity int, status TruckStatus) (*Truck, error) {
	var capacityErr error
	if capacity <= 0 {
		capacityErr = errs.NewValueIsInvalidErrorWithCause("capacity is invalid", fmt.Errorf("%d is not greater than 0", capacity))
	}

	if err := errors.Join(
		id.Validate(),
		homeStoreID.Validate(),
		capacityErr,
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Truck{
		id:          id,
		homeStoreID: homeStoreID,
		capacity:    capacity,
		status:      status,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (t *Truck) Validate() error {
	if t == nil {
		return ErrTruckIsNotConstructed
	}
	return t.guard.Validate(ErrTruckIsNotConstructed)
}

func (t *Truck) ID() kernel.UUID          { return t.id }
func (t *Truck) Kind() Kind               { return KindTruck }
func (t *Truck) HomeStoreID() kernel.UUID { return t.homeStoreID }
func (t *Truck) Capacity() int            { return t.capacity }
func (t *Truck) Status() TruckStatus      { return t.status }

func (t *Truck) IsAvailable() bool {
	return t.status == TruckAvailable
}

// Remaining is 1 while the truck is Available, 0 otherwise.
func (t *Truck) Remaining() int {
	if t.IsAvailable() {
		return truckUnits
	}
	return 0
}

// Reserve claims the truck. amount must be 1.
func (t *Truck) Reserve(amount int) error {
	if amount != truckUnits {
		return errs.NewValueIsOutOfRangeError("truck amount", amount, truckUnits, truckUnits)
	}
	if !t.IsAvailable() {
		return capacityExceeded(KindTruck, t.id, amount, 0)
	}
	t.status = TruckInUse
	return nil
}

// Release hands the truck back. Only an InUse truck can be released.
func (t *Truck) Release(amount int) error {
	if amount != truckUnits {
		return errs.NewValueIsOutOfRangeError("truck amount", amount, truckUnits, truckUnits)
	}
	next, err := t.status.transition(TruckAvailable, TruckInUse)
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// SendToMaintenance takes an Available truck out of service.
func (t *Truck) SendToMaintenance() error {
	next, err := t.status.transition(TruckMaintenance, TruckAvailable)
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// ReturnFromMaintenance makes the truck Available again.
func (t *Truck) ReturnFromMaintenance() error {
	next, err := t.status.transition(TruckAvailable, TruckMaintenance)
	if err != nil {
		return err
	}
	t.status = next
	return nil
}
