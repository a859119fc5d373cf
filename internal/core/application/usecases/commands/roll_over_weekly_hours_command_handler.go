package commands

import (
	"context"
	"errors"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/retry"
)

// RollOverWeeklyHoursCommandHandler refreshes week counters one worker per
// transaction, so a long run never holds more than one worker lock. A worker
// that keeps failing is logged and skipped; the rest are still processed.
type RollOverWeeklyHoursCommandHandler struct {
	uowFactory WorkerUoWFactory
	labor      services.LaborLedger
	retry      retry.Policy
	logger     *slog.Logger
}

func NewRollOverWeeklyHoursCommandHandler(
	uowFactory WorkerUoWFactory,
	labor services.LaborLedger,
	policy retry.Policy,
	logger *slog.Logger,
) RollOverWeeklyHoursCommandHandler {
	return RollOverWeeklyHoursCommandHandler{
		uowFactory: uowFactory,
		labor:      labor,
		retry:      policy,
		logger:     logger.With("component", "week_rollover"),
	}
}

// Handle returns how many counters changed. The error joins the failures of
// individual workers.
func (h RollOverWeeklyHoursCommandHandler) Handle(ctx context.Context, command RollOverWeeklyHoursCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.uowFactory.Create().WorkerRepository().ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	var failures []error
	for _, id := range ids {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failures = append(failures, ctxErr)
			break
		}

		var changed bool
		err := retry.Do(ctx, h.retry, func(ctx context.Context) error {
			var err error
			changed, err = h.rollOver(ctx, id)
			return err
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "Week rollover failed for worker", "worker_id", id, "error", err)
			failures = append(failures, err)
			continue
		}
		if changed {
			updated++
		}
	}

	h.logger.InfoContext(ctx, "Week rollover finished",
		"week_start", h.labor.Calendar().WeekOf(h.labor.Today()), "workers", len(ids), "updated", updated)
	return updated, errors.Join(failures...)
}

func (h RollOverWeeklyHoursCommandHandler) rollOver(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	w, err := uow.WorkerRepository().GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	if !h.labor.RollOver(w) {
		return false, nil
	}

	if err = uow.WorkerRepository().Update(ctx, w); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
