package resource

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")

// Store is a regional distribution store. Goods wait there between the train
// and the last-mile truck, consuming space units until delivered.
type Store struct {
	id       kernel.UUID
	city     kernel.City
	capacity int
	consumed int
	guard    guard.ConstructorGuard
}

func NewStore(id kernel.UUID, city kernel.City, capacity int) (*Store, error) {
	return RestoreStore(id, city, capacity, 0)
}

func RestoreStore(id kernel.UUID, city kernel.City, capacity, consumed int) (*Store, error) {
	if err := errors.Join(
		id.Validate(),
		city.Validate(),
		validateCapacity(capacity, consumed),
	); err != nil {
		return nil, err
	}

	return &Store{
		id:       id,
		city:     city,
		capacity: capacity,
		consumed: consumed,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

func (s *Store) ID() kernel.UUID   { return s.id }
func (s *Store) Kind() Kind        { return KindStore }
func (s *Store) City() kernel.City { return s.city }
func (s *Store) Capacity() int     { return s.capacity }
func (s *Store) Consumed() int     { return s.consumed }

func (s *Store) Remaining() int {
	return s.capacity - s.consumed
}

func (s *Store) Reserve(amount int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount > s.Remaining() {
		return capacityExceeded(KindStore, s.id, amount, s.Remaining())
	}
	s.consumed += amount
	return nil
}

func (s *Store) Release(amount int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount > s.consumed {
		return overRelease(KindStore, amount, s.consumed)
	}
	s.consumed -= amount
	return nil
}
