// Package jobs provides scheduled background tasks for the distribution system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order processing.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to deliver pending notifications
// and invalidate cached order read models after stage transitions
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outbox, publisher, invalidator, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch job uses the cron expression "* * * * * *" which means it runs
// every second, keeping notification delivery latency within one tick of the
// committing transaction.
//
// # Error Handling
//
// - A failed publish leaves the notification queued for the next tick
// - A failed mark after a successful publish causes re-delivery, so
// consumers must treat notifications as at-least-once
// - Cache invalidation failures are logged and never block delivery
package jobs
