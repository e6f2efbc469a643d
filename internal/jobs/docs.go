// Package jobs provides scheduled background tasks for the order
// coordination service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path cannot guarantee.
//
// # Available Jobs
//
// 1. FeeBackfillJob - Runs every 30 seconds to resolve delivery fees for
// orders whose geocoding failed at checkout.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(resolvePendingFeesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing geocoding provider is an expected condition: the backfill job
// logs per-order failures at warn level inside the handler and retries the
// remaining orders on the next run.
package jobs
