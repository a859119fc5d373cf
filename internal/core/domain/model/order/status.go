package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Allocated ──> InTransit ──> Delivered
//	   ^            │             │
//	   └────────────┴─────────────┘  (allocation cancelled by an operator)
//
//	Pending, Allocated, InTransit ──> Cancelled  (customer cancellation)
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status. The order waits in the backlog for an allocation.
	Pending

	// Allocated means the order holds exactly one Scheduled allocation.
	Allocated

	// InTransit means the allocation was started by the dispatch collaborator.
	InTransit

	// Delivered is terminal: the dispatch collaborator reported completion.
	Delivered

	// Cancelled is terminal: the customer withdrew the order.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Allocated: "Allocated",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// ParseStatus converts the persisted or wire name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the defined statuses other than Unknown.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// HoldsAllocation reports whether an order in this status must reference an allocation.
func (s Status) HoldsAllocation() bool {
	return s == Allocated || s == InTransit || s == Delivered
}

// Allocate transitions Pending to Allocated.
func (s Status) Allocate() (Status, error) {
	return s.transition(Allocated, Pending)
}

// Dispatch transitions Allocated to InTransit.
func (s Status) Dispatch() (Status, error) {
	return s.transition(InTransit, Allocated)
}

// Deliver transitions InTransit to Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(Delivered, InTransit)
}

// Release returns an allocated or in-transit order to the backlog.
func (s Status) Release() (Status, error) {
	return s.transition(Pending, Allocated, InTransit)
}

// Cancel transitions any pre-delivery status to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Cancelled, Pending, Allocated, InTransit)
}

func (s Status) transition(to Status, from ...Status) (Status, error) {
	for _, allowed := range from {
		if s == allowed {
			return to, nil
		}
	}
	return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), to.String())
}
