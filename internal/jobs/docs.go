// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StoreProbeJob - Pings PostgreSQL on a schedule (every fifteen seconds by
// default, STORE_PROBE_SCHEDULE overrides it) and publishes the result to the
// readiness probe and the storefront_store_up gauge.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	probe := jobs.NewStoreProbeJob(sqlDB, readiness, metrics, schedule, logger)
//	jobManager := jobs.NewJobManager(probe)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with a leading seconds field.
// Overlapping runs are skipped, so a slow store never piles up probes.
//
// # Error Handling
//
// - A failed probe is recorded, not returned; the job keeps running
// - Only up/down transitions are logged
// - An invalid schedule fails StartAll
package jobs
