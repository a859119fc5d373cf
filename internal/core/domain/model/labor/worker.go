package labor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
)

// Worker is a driver or an assistant based at a home store.
//
// The worker carries its own labor ledger row: the history of non-cancelled
// assignments and a counter of hours booked in the current week. The counter
// is always recomputed from history, so it can never drift from the sum of
// the week's assignments.
//
// Business rules:
//   - role and home store never change after creation
//   - history holds at most one entry per allocation
//   - history is kept sorted by date
type Worker struct {
	id          kernel.UUID
	name        string
	role        Role
	homeStoreID kernel.UUID
	status      Status
	history     []Assignment
	weekStart   kernel.Date
	weekHours   decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewWorker creates an Active worker with an empty history.
func NewWorker(id kernel.UUID, name string, role Role, homeStoreID kernel.UUID) (*Worker, error) {
	return RestoreWorker(id, name, role, homeStoreID, Active, nil, kernel.Date{}, decimal.Zero)
}

// RestoreWorker reconstructs a worker from storage. weekStart may be the zero
// Date for a worker whose counter was never synced.
func RestoreWorker(
	id kernel.UUID,
	name string,
	role Role,
	homeStoreID kernel.UUID,
	status Status,
	history []Assignment,
	weekStart kernel.Date,
	weekHours decimal.Decimal,
) (*Worker, error) {
	w := &Worker{
		guard:     guard.NewConstructorGuard(),
		weekStart: weekStart,
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setRole(role),
		w.setHomeStore(homeStoreID),
		w.setStatus(status),
		w.setHistory(history),
		w.setWeekHours(weekHours),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Worker) ID() kernel.UUID          { return w.id }
func (w *Worker) Name() string             { return w.name }
func (w *Worker) Role() Role               { return w.role }
func (w *Worker) HomeStoreID() kernel.UUID { return w.homeStoreID }
func (w *Worker) Status() Status           { return w.status }
func (w *Worker) IsActive() bool           { return w.status == Active }

// WeekStart is the first day of the week the counter refers to.
func (w *Worker) WeekStart() kernel.Date { return w.weekStart }

// WeekHours is the persisted counter for WeekStart's week.
func (w *Worker) WeekHours() decimal.Decimal { return w.weekHours }

// History returns a copy of the assignment history in date order.
func (w *Worker) History() []Assignment {
	return slices.Clone(w.history)
}

// HoursInWeekOf sums the booked hours of the week that contains day.
func (w *Worker) HoursInWeekOf(calendar kernel.Calendar, day kernel.Date) decimal.Decimal {
	week := calendar.WeekOf(day)
	total := decimal.Zero
	for _, a := range w.history {
		if calendar.WeekOf(a.date).IsEqual(week) {
			total = total.Add(a.hours)
		}
	}
	return total
}

// WorksOn reports whether the worker already has an assignment on day.
func (w *Worker) WorksOn(day kernel.Date) bool {
	return slices.ContainsFunc(w.history, func(a Assignment) bool { return a.date.IsEqual(day) })
}

// ConsecutiveRunWith returns the length of the run of calendar-adjacent
// working days that day would belong to if the worker were assigned on it.
func (w *Worker) ConsecutiveRunWith(day kernel.Date) int {
	run := 1
	for d := day.AddDays(-1); w.WorksOn(d); d = d.AddDays(-1) {
		run++
	}
	for d := day.AddDays(1); w.WorksOn(d); d = d.AddDays(1) {
		run++
	}
	return run
}

// Assignment looks up the history entry of an allocation.
func (w *Worker) Assignment(allocationID kernel.UUID) (Assignment, bool) {
	i := w.indexOf(allocationID)
	if i < 0 {
		return Assignment{}, false
	}
	return w.history[i], true
}

// Record appends an assignment to the history. It does not check labor
// rules; callers go through the labor ledger for that.
func (w *Worker) Record(a Assignment) error {
	if err := a.allocationID.Validate(); err != nil {
		return err
	}
	if w.indexOf(a.allocationID) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment is invalid",
			fmt.Errorf("allocation %s is already recorded for worker %s", a.allocationID, w.id),
		)
	}

	w.history = append(w.history, a)
	w.sortHistory()
	return nil
}

// Remove drops the assignment of an allocation from the history.
func (w *Worker) Remove(allocationID kernel.UUID) (Assignment, error) {
	i := w.indexOf(allocationID)
	if i < 0 {
		return Assignment{}, errs.NewObjectNotFoundError("assignment", allocationID)
	}

	removed := w.history[i]
	w.history = slices.Delete(w.history, i, i+1)
	return removed, nil
}

// SyncWeek points the counter at the week containing today and recomputes it.
func (w *Worker) SyncWeek(calendar kernel.Calendar, today kernel.Date) {
	w.weekStart = calendar.WeekOf(today)
	w.weekHours = w.HoursInWeekOf(calendar, today)
}

// ChangeStatus moves the worker between Active, OnLeave and Inactive.
// Existing assignments are kept.
func (w *Worker) ChangeStatus(status Status) error {
	return w.setStatus(status)
}

func (w *Worker) indexOf(allocationID kernel.UUID) int {
	return slices.IndexFunc(w.history, func(a Assignment) bool { return a.allocationID.IsEqual(allocationID) })
}

func (w *Worker) sortHistory() {
	slices.SortStableFunc(w.history, func(a, b Assignment) int {
		return a.date.Time().Compare(b.date.Time())
	})
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Worker) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	w.role = role
	return nil
}

func (w *Worker) setHomeStore(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.homeStoreID = id
	return nil
}

func (w *Worker) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	w.status = status
	return nil
}

func (w *Worker) setHistory(history []Assignment) error {
	w.history = make([]Assignment, 0, len(history))
	for _, a := range history {
		if err := w.Record(a); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) setWeekHours(hours decimal.Decimal) error {
	if hours.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("week hours is invalid", fmt.Errorf("%s is negative", hours))
	}
	w.weekHours = hours
	return nil
}
