package services_test

import (
	"testing"

	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/resource"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerState struct {
	tripRemaining    int
	storeRemaining   int
	truckStatus      resource.TruckStatus
	driverHours      string
	driverEntries    int
	assistantHours   string
	assistantEntries int
	orderStatus      order.Status
}

func snapshot(c services.Candidate) ledgerState {
	return ledgerState{
		tripRemaining:    c.TrainTrip.Remaining(),
		storeRemaining:   c.Store.Remaining(),
		truckStatus:      c.Truck.Status(),
		driverHours:      c.Driver.WeekHours().String(),
		driverEntries:    len(c.Driver.History()),
		assistantHours:   c.Assistant.WeekHours().String(),
		assistantEntries: len(c.Assistant.History()),
		orderStatus:      c.Order.Status(),
	}
}

func TestAllocationCoordinator_Commit(t *testing.T) {
	t.Run("applies every effect", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()

		a, violations, err := f.coordinator().Commit(id, f.candidate)

		require.NoError(t, err)
		require.Empty(t, violations)
		require.NotNil(t, a)
		assert.Equal(t, allocation.Scheduled, a.Status())
		assert.Equal(t, f.candidate.Binding(), a.Binding())
		assert.Equal(t, 60, a.SpaceUnits())

		assert.Equal(t, 40, f.candidate.TrainTrip.Remaining())
		assert.Equal(t, 40, f.candidate.Store.Remaining())
		assert.Equal(t, resource.TruckInUse, f.candidate.Truck.Status())
		assert.Equal(t, "5", f.candidate.Driver.WeekHours().String())
		assert.Equal(t, "5", f.candidate.Assistant.WeekHours().String())
		assert.Equal(t, order.Allocated, f.candidate.Order.Status())
		assert.True(t, f.candidate.Order.AllocationID().IsEqual(id))
	})

	t.Run("violations change nothing", func(t *testing.T) {
		f := newFixture(t)
		f.book(f.candidate.Driver, f.candidate.Date.AddDays(-1), 5)
		before := snapshot(f.candidate)

		a, violations, err := f.coordinator().Commit(kernel.NewUUID(), f.candidate)

		require.NoError(t, err)
		assert.Nil(t, a)
		assert.Equal(t, []services.Code{services.ConsecutiveAssignmentViolation}, violations.Codes())
		assert.Equal(t, before, snapshot(f.candidate))
	})

	t.Run("second order no longer fits the trip", func(t *testing.T) {
		f := newFixture(t)
		_, violations, err := f.coordinator().Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)
		require.Empty(t, violations)

		second := f.candidate
		second.Order = f.newOrder(60)
		second.Truck = f.newTruck(f.candidate.Store.ID())
		second.Driver = f.newWorker(f.candidate.Driver.Role(), f.candidate.Store.ID())
		second.Assistant = f.newWorker(f.candidate.Assistant.Role(), f.candidate.Store.ID())

		a, violations, err := f.coordinator().Commit(kernel.NewUUID(), second)

		require.NoError(t, err)
		assert.Nil(t, a)
		assert.Equal(t, []services.Code{services.CapacityExceeded, services.CapacityExceeded}, violations.Codes())
		assert.Equal(t, order.Pending, second.Order.Status())
	})
}

func TestAllocationCoordinator_Cancel(t *testing.T) {
	t.Run("cancel then recommit restores the ledgers", func(t *testing.T) {
		f := newFixture(t)
		before := snapshot(f.candidate)
		c := f.coordinator()

		a, violations, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)
		require.Empty(t, violations)
		committed := snapshot(f.candidate)

		changed, err := c.Cancel(a, f.candidate.Resources, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, allocation.Cancelled, a.Status())
		assert.Equal(t, before, snapshot(f.candidate))
		assert.Nil(t, f.candidate.Order.AllocationID())

		again, violations, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)
		require.Empty(t, violations)
		assert.NotNil(t, again)
		assert.Equal(t, committed, snapshot(f.candidate))
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)

		_, err = c.Cancel(a, f.candidate.Resources, false)
		require.NoError(t, err)
		after := snapshot(f.candidate)

		changed, err := c.Cancel(a, f.candidate.Resources, false)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, after, snapshot(f.candidate))
	})

	t.Run("customer cancellation cancels the order", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)

		_, err = c.Cancel(a, f.candidate.Resources, true)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, f.candidate.Order.Status())
		assert.Equal(t, 100, f.candidate.TrainTrip.Remaining())
	})

	t.Run("in progress allocation releases everything", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)
		require.NoError(t, c.Advance(a, f.candidate.Resources, allocation.InProgress))

		_, err = c.Cancel(a, f.candidate.Resources, false)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, f.candidate.Order.Status())
		assert.True(t, f.candidate.Truck.IsAvailable())
		assert.Equal(t, 100, f.candidate.Store.Remaining())
	})

	t.Run("completed allocation cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)
		require.NoError(t, c.Advance(a, f.candidate.Resources, allocation.InProgress))
		require.NoError(t, c.Advance(a, f.candidate.Resources, allocation.Completed))

		_, err = c.Cancel(a, f.candidate.Resources, false)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("resources of another allocation are rejected", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)
		other := f.candidate.Resources
		other.Truck = f.newTruck(f.candidate.Store.ID())

		_, err = c.Cancel(a, other, false)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, allocation.Scheduled, a.Status())
	})
}

func TestAllocationCoordinator_Advance(t *testing.T) {
	t.Run("completion delivers the order and frees truck and store", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)

		require.NoError(t, c.Advance(a, f.candidate.Resources, allocation.InProgress))
		assert.Equal(t, order.InTransit, f.candidate.Order.Status())

		require.NoError(t, c.Advance(a, f.candidate.Resources, allocation.Completed))
		assert.Equal(t, order.Delivered, f.candidate.Order.Status())
		assert.True(t, f.candidate.Truck.IsAvailable())
		assert.Equal(t, 100, f.candidate.Store.Remaining())
		assert.Equal(t, 40, f.candidate.TrainTrip.Remaining())
		assert.Equal(t, "5", f.candidate.Driver.WeekHours().String())
	})

	t.Run("skipping a state is rejected", func(t *testing.T) {
		f := newFixture(t)
		c := f.coordinator()
		a, _, err := c.Commit(kernel.NewUUID(), f.candidate)
		require.NoError(t, err)

		err = c.Advance(a, f.candidate.Resources, allocation.Completed)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.Allocated, f.candidate.Order.Status())
	})
}
