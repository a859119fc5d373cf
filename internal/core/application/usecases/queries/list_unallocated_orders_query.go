// Package queries contains read-only operations. They read straight from the
// database or through unlocked repositories and never change state.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrListUnallocatedOrdersQueryIsNotConstructed = errors.New(
	"ListUnallocatedOrdersQuery must be created via NewListUnallocatedOrdersQuery constructor",
)

// ListUnallocatedOrdersQuery lists Pending orders, optionally only those
// bound for one city.
//
// Example:
//
//	city := kernel.MustCity("Kandy")
//	query := NewListUnallocatedOrdersQuery(&city)
//	orders, err := handler.Handle(ctx, query)
type ListUnallocatedOrdersQuery struct {
	city  *kernel.City
	guard guard.ConstructorGuard
}

// NewListUnallocatedOrdersQuery creates the query. A nil city lists every
// Pending order.
func NewListUnallocatedOrdersQuery(city *kernel.City) (ListUnallocatedOrdersQuery, error) {
	if city != nil {
		if err := city.Validate(); err != nil {
			return ListUnallocatedOrdersQuery{}, err
		}
	}
	return ListUnallocatedOrdersQuery{city: city, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUnallocatedOrdersQuery) City() *kernel.City {
	return q.city
}

func (q ListUnallocatedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUnallocatedOrdersQueryIsNotConstructed)
}

// UnallocatedOrder is one row of the backlog.
type UnallocatedOrder struct {
	ID           kernel.UUID
	Destination  string
	RequiredDate kernel.Date
	SpaceUnits   int
}
