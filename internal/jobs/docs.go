// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with second-level
// scheduling.
//
// # Available Jobs
//
// 1. DispatchSweepJob - runs every 30 seconds to retry courier assignment
// for confirmed orders that the delayed post-payment trigger did not cover
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, autoAssignHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
