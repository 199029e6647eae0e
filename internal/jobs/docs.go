// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DeliveryReconciliationJob - Re-saves delivered orders that are not
// consistently paid through the order consistency pipeline
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager, err := jobs.NewJobManager(reconcileHandler, jobs.Config{
//		ReconcileSchedule: "0 */5 * * * *",
//		ReconcileBatchSize: 100,
//	}, logger)
//	if err != nil {
//		return err
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds. An empty schedule
// disables the job.
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. Runs never overlap.
package jobs
