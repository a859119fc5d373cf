package services

import (
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
)

// Code identifies the business rule a candidate allocation broke.
type Code string

const (
	StructuralMismatch             Code = "StructuralMismatch"
	CapacityExceeded               Code = "CapacityExceeded"
	WeeklyHourExceeded             Code = "WeeklyHourExceeded"
	ConsecutiveAssignmentViolation Code = "ConsecutiveAssignmentViolation"
	ResourceUnavailable            Code = "ResourceUnavailable"
)

// Category groups codes the way callers react to them.
type Category string

const (
	CategoryStructural   Category = "Structural"
	CategoryCapacity     Category = "Capacity"
	CategoryLabor        Category = "LaborViolation"
	CategoryAvailability Category = "Availability"
)

func (c Code) Category() Category {
	switch c {
	case StructuralMismatch:
		return CategoryStructural
	case CapacityExceeded:
		return CategoryCapacity
	case WeeklyHourExceeded, ConsecutiveAssignmentViolation:
		return CategoryLabor
	default:
		return CategoryAvailability
	}
}

// Subject names what a violation is about.
type Subject string

const (
	SubjectOrder     Subject = "order"
	SubjectTrainTrip Subject = "train_trip"
	SubjectStore     Subject = "store"
	SubjectTruck     Subject = "truck"
	SubjectDriver    Subject = "driver"
	SubjectAssistant Subject = "assistant"
)

// Violation is one broken business rule. Violations are returned as data so
// the caller can pick another candidate; Violation also satisfies error for
// ledger operations that fail on a single rule.
type Violation struct {
	Code      Code
	Subject   Subject
	SubjectID kernel.UUID
	Message   string
}

func newViolation(code Code, subject Subject, id kernel.UUID, format string, args ...any) Violation {
	return Violation{Code: code, Subject: subject, SubjectID: id, Message: fmt.Sprintf(format, args...)}
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", v.Code, v.Subject, v.SubjectID, v.Message)
}

// Violations is an ordered list of broken rules; empty means the candidate is acceptable.
type Violations []Violation

func (vs Violations) OK() bool {
	return len(vs) == 0
}

func (vs Violations) Codes() []Code {
	codes := make([]Code, 0, len(vs))
	for _, v := range vs {
		codes = append(codes, v.Code)
	}
	return codes
}

func (vs Violations) Has(code Code) bool {
	for _, v := range vs {
		if v.Code == code {
			return true
		}
	}
	return false
}

func (vs Violations) String() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.Error())
	}
	return strings.Join(parts, "; ")
}
