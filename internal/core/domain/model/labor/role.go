package labor

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Role is the job a worker does on a delivery. Every allocation needs one
// Driver and one Assistant.
type Role int

const (
	RoleUnknown Role = iota
	Driver
	Assistant
)

var (
	driverWeeklyCap    = decimal.NewFromInt(40)
	assistantWeeklyCap = decimal.NewFromInt(60)
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		Driver:      "Driver",
		Assistant:   "Assistant",
	}
}

func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r != Driver && r != Assistant {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// WeeklyCap is the most hours a worker of this role may be booked in one week.
func (r Role) WeeklyCap() decimal.Decimal {
	switch r {
	case Driver:
		return driverWeeklyCap
	case Assistant:
		return assistantWeeklyCap
	default:
		return decimal.Zero
	}
}

// MaxConsecutiveDays is the longest run of calendar-adjacent working days
// allowed: a Driver never works two days in a row, an Assistant at most two.
func (r Role) MaxConsecutiveDays() int {
	switch r {
	case Driver:
		return 1
	case Assistant:
		return 2
	default:
		return 0
	}
}
