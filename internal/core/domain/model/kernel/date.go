package kernel

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/pkg/errs"
)

// DateLayout is the wire and storage format of a Date.
const DateLayout = time.DateOnly

// ErrDateIsNotConstructed is returned when validating a zero-value Date.
var ErrDateIsNotConstructed = errors.New("Date must be created via NewDate, DateFromTime, or ParseDate")

// Date is a civil calendar day with no time of day and no time zone.
// Allocation dates, required delivery dates and labor history entries are
// Dates, so "consecutive" always means two civil days one apart.
//
// The underlying instant is midnight UTC, which keeps day arithmetic exact.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components. Out-of-range components are
// rejected rather than normalized.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, errs.NewValueIsInvalidErrorWithCause(
			"date is invalid",
			fmt.Errorf("%04d-%02d-%02d is not a calendar day", year, int(month), day),
		)
	}
	return Date{t: t}, nil
}

// MustDate is NewDate for literals known to be valid.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateFromTime returns the civil day of t as observed in loc.
func DateFromTime(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return Date{t: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date is invalid", err)
	}
	return Date{t: t}, nil
}

// Validate returns ErrDateIsNotConstructed for the zero value.
func (d Date) Validate() error {
	if d.t.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

// Time returns midnight UTC of the day, for persistence.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of days from d to other; negative if other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

func (d Date) IsEqual(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// IsAdjacent reports whether the two days are exactly one calendar day apart.
func (d Date) IsAdjacent(other Date) bool {
	diff := d.DaysUntil(other)
	return diff == 1 || diff == -1
}
