package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultWeekRolloverSchedule fires five minutes after midnight every day.
// Rolling over is a no-op for workers already on the current week.
const DefaultWeekRolloverSchedule = "0 5 0 * * *"

type RollOverWeeklyHoursHandler interface {
	Handle(ctx context.Context, command commands.RollOverWeeklyHoursCommand) (int, error)
}

// WeekRolloverJob resets worker week counters once a new labor week begins.
type WeekRolloverJob struct {
	handler  RollOverWeeklyHoursHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewWeekRolloverJob creates the job. The schedule has a seconds field and is
// read in loc, the operating time zone.
func NewWeekRolloverJob(
	handler RollOverWeeklyHoursHandler,
	schedule string,
	loc *time.Location,
	logger *slog.Logger,
) *WeekRolloverJob {
	if schedule == "" {
		schedule = DefaultWeekRolloverSchedule
	}
	if loc == nil {
		loc = time.UTC
	}
	return &WeekRolloverJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		logger:   logger.With("component", "week_rollover_job"),
	}
}

func (j *WeekRolloverJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Week rollover job started", "schedule", j.schedule)
	return nil
}

// Run rolls every worker over once.
func (j *WeekRolloverJob) Run(ctx context.Context) error {
	updated, err := j.handler.Handle(ctx, commands.NewRollOverWeeklyHoursCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Week rollover failed", "updated", updated, "error", err)
		return err
	}

	j.logger.InfoContext(ctx, "Week rollover finished", "updated", updated)
	return nil
}

// Stop waits for a running rollover to finish.
func (j *WeekRolloverJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Week rollover job stopped")
}
