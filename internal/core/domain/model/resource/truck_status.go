package resource

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// TruckStatus is the availability of a truck.
//
//	Available <──> InUse
//	Available <──> Maintenance
type TruckStatus int

const (
	TruckUnknown TruckStatus = iota
	TruckAvailable
	TruckInUse
	TruckMaintenance
)

func getTruckStatusStrings() map[TruckStatus]string {
	return map[TruckStatus]string{
		TruckUnknown:     "Unknown",
		TruckAvailable:   "Available",
		TruckInUse:       "InUse",
		TruckMaintenance: "Maintenance",
	}
}

func ParseTruckStatus(s string) (TruckStatus, error) {
	for status, name := range getTruckStatusStrings() {
		if status != TruckUnknown && name == s {
			return status, nil
		}
	}
	return TruckUnknown, errs.NewValueIsInvalidErrorWithCause("truck status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s TruckStatus) Validate() error {
	if _, ok := getTruckStatusStrings()[s]; !ok || s == TruckUnknown {
		return errs.NewValueIsInvalidErrorWithCause("truck status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s TruckStatus) String() string {
	if str, ok := getTruckStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s TruckStatus) transition(to TruckStatus, from TruckStatus) (TruckStatus, error) {
	if s != from {
		return TruckUnknown, errs.NewInvalidStateTransitionError("truck", s.String(), to.String())
	}
	return to, nil
}
