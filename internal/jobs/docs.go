// Package jobs provides background tasks for the allocation engine.
//
// # Available Jobs
//
// 1. WeekRolloverJob - cron job that resets worker week counters when a new
// labor week begins (schedule WEEK_ROLLOVER_SCHEDULE, seconds field included)
// 2. Workers - long running consumers such as the delivery events subscriber
//
// # Usage
//
//	rollover := jobs.NewWeekRolloverJob(handler, schedule, loc, logger)
//	jobManager := jobs.NewJobManager(rollover, map[string]jobs.Worker{
//		"delivery_events": subscriber,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed rollover is logged; the next tick retries every worker
// - A worker that returns an error is logged and not restarted
// - A failed job start leaves nothing running
package jobs
