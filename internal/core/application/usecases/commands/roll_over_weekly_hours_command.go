package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrRollOverWeeklyHoursCommandIsNotConstructed = errors.New(
	"RollOverWeeklyHoursCommand must be created via NewRollOverWeeklyHoursCommand constructor",
)

// RollOverWeeklyHoursCommand moves every worker's hour counter to the
// current week.
type RollOverWeeklyHoursCommand struct {
	guard guard.ConstructorGuard
}

func NewRollOverWeeklyHoursCommand() RollOverWeeklyHoursCommand {
	return RollOverWeeklyHoursCommand{guard: guard.NewConstructorGuard()}
}

func (c RollOverWeeklyHoursCommand) Validate() error {
	return c.guard.Validate(ErrRollOverWeeklyHoursCommandIsNotConstructed)
}
