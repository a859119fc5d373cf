package services

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/labor"
	"freight/internal/pkg/clock"

	"github.com/shopspring/decimal"
)

// LaborLedger applies the labor rules to workers and books or unbooks their
// hours. The week boundary and "today" come from the injected calendar and
// clock, so week rollover and day adjacency are deterministic in tests.
//
// Rules:
//   - hours already booked in the week of the assignment date plus the new
//     hours must not exceed the role's weekly cap
//   - the assignment must not extend a run of calendar-adjacent working days
//     beyond the role's maximum (Driver 1, Assistant 2)
//
// Several deliveries on the same day are allowed within the weekly cap; the
// day counts once toward the run.
//
// Cancelled allocations are removed from the history, so they count toward
// neither rule.
type LaborLedger struct {
	calendar kernel.Calendar
	clock    clock.Clock
}

func NewLaborLedger(calendar kernel.Calendar, clk clock.Clock) (LaborLedger, error) {
	var clockErr error
	if clk == nil {
		clockErr = errors.New("clock is required")
	}
	if err := errors.Join(calendar.Validate(), clockErr); err != nil {
		return LaborLedger{}, err
	}
	return LaborLedger{calendar: calendar, clock: clk}, nil
}

func (l LaborLedger) Calendar() kernel.Calendar {
	return l.calendar
}

// Today is the current civil day in the calendar's time zone.
func (l LaborLedger) Today() kernel.Date {
	return l.calendar.Today(l.clock.Now())
}

// CanAssign evaluates both labor rules independently and returns every
// violation found. It never mutates the worker.
func (l LaborLedger) CanAssign(w *labor.Worker, subject Subject, date kernel.Date, hours decimal.Decimal) Violations {
	var violations Violations

	booked := w.HoursInWeekOf(l.calendar, date)
	total := booked.Add(hours)
	if weeklyCap := w.Role().WeeklyCap(); total.GreaterThan(weeklyCap) {
		violations = append(violations, newViolation(WeeklyHourExceeded, subject, w.ID(),
			"%s booked + %s requested = %s hours exceeds the weekly cap of %s in week of %s",
			booked, hours, total, weeklyCap, l.calendar.WeekOf(date)))
	}

	if run, limit := w.ConsecutiveRunWith(date), w.Role().MaxConsecutiveDays(); run > limit {
		violations = append(violations, newViolation(ConsecutiveAssignmentViolation, subject, w.ID(),
			"%s would be day %d of consecutive work, at most %d allowed", date, run, limit))
	}

	return violations
}

// Commit books the assignment and refreshes the worker's week counter.
func (l LaborLedger) Commit(w *labor.Worker, allocationID kernel.UUID, date kernel.Date, hours decimal.Decimal) error {
	a, err := labor.NewAssignment(allocationID, date, hours)
	if err != nil {
		return err
	}
	if err := w.Record(a); err != nil {
		return err
	}
	w.SyncWeek(l.calendar, l.Today())
	return nil
}

// Reverse unbooks the assignment of an allocation and refreshes the counter.
func (l LaborLedger) Reverse(w *labor.Worker, allocationID kernel.UUID) error {
	if _, err := w.Remove(allocationID); err != nil {
		return err
	}
	w.SyncWeek(l.calendar, l.Today())
	return nil
}

// RollOver moves the worker's counter to the current week. Totals of past
// weeks are dropped; hours already booked for the new week are counted.
func (l LaborLedger) RollOver(w *labor.Worker) bool {
	before, hours := w.WeekStart(), w.WeekHours()
	w.SyncWeek(l.calendar, l.Today())
	return !before.IsEqual(w.WeekStart()) || !hours.Equal(w.WeekHours())
}
