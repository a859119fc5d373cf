package allocation

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status of an allocation. Progress is monotonic; the only way off the main
// line is an explicit cancel before completion.
//
//	Scheduled ──> InProgress ──> Completed
//	    │              │
//	    └──────────────┴──> Cancelled
type Status int

const (
	Unknown Status = iota
	Scheduled
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Scheduled:  "Scheduled",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("allocation status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("allocation status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the single status an advance may move to, or Unknown.
func (s Status) Next() Status {
	switch s {
	case Scheduled:
		return InProgress
	case InProgress:
		return Completed
	default:
		return Unknown
	}
}

// Advance moves to next, which must be the immediate successor of s.
func (s Status) Advance(next Status) (Status, error) {
	if next == Unknown || s.Next() != next {
		return Unknown, errs.NewInvalidStateTransitionError("allocation", s.String(), next.String())
	}
	return next, nil
}

// Cancel moves Scheduled or InProgress to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Scheduled && s != InProgress {
		return Unknown, errs.NewInvalidStateTransitionError("allocation", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
