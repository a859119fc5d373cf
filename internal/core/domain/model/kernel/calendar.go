package kernel

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCalendarIsNotConstructed = errors.New("Calendar must be created via NewCalendar constructor")

// Calendar fixes the two definitions the labor rules depend on: where a work
// week begins and which time zone turns an instant into a civil day.
// It is injected into the labor ledger so tests can move across week
// boundaries deterministically.
type Calendar struct {
	weekStart time.Weekday
	location  *time.Location
	guard     guard.ConstructorGuard
}

// NewCalendar creates a calendar whose weeks begin on weekStart.
// A nil location means UTC.
func NewCalendar(weekStart time.Weekday, location *time.Location) (Calendar, error) {
	if weekStart < time.Sunday || weekStart > time.Saturday {
		return Calendar{}, errs.NewValueIsInvalidErrorWithCause(
			"week start is invalid",
			fmt.Errorf("%d is not a weekday", int(weekStart)),
		)
	}
	if location == nil {
		location = time.UTC
	}
	return Calendar{
		weekStart: weekStart,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// DefaultCalendar uses ISO weeks (Monday start) in UTC.
func DefaultCalendar() Calendar {
	c, _ := NewCalendar(time.Monday, time.UTC)
	return c
}

func (c Calendar) Validate() error {
	return c.guard.Validate(ErrCalendarIsNotConstructed)
}

func (c Calendar) WeekStartDay() time.Weekday {
	return c.weekStart
}

func (c Calendar) Location() *time.Location {
	return c.location
}

// Today returns the civil day of now in the calendar's time zone.
func (c Calendar) Today(now time.Time) Date {
	return DateFromTime(now, c.location)
}

// WeekOf returns the first day of the week containing d.
func (c Calendar) WeekOf(d Date) Date {
	offset := (int(d.Weekday()) - int(c.weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// SameWeek reports whether both days fall in the same work week.
func (c Calendar) SameWeek(a, b Date) bool {
	return c.WeekOf(a).IsEqual(c.WeekOf(b))
}

// CurrentWeek returns the first day of the week containing now.
func (c Calendar) CurrentWeek(now time.Time) Date {
	return c.WeekOf(c.Today(now))
}
