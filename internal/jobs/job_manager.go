package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds the job schedules.
type Config struct {
	ReconcileSchedule  string
	ReconcileBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationJob *DeliveryReconciliationJob
}

// NewJobManager creates a job manager with all configured jobs. Jobs with an
// empty schedule are not created.
func NewJobManager(reconciler DeliveryReconciler, cfg Config, logger *zap.Logger) (*JobManager, error) {
	jm := &JobManager{}
	if cfg.ReconcileSchedule == "" {
		return jm, nil
	}

	job, err := NewDeliveryReconciliationJob(reconciler, cfg.ReconcileSchedule, cfg.ReconcileBatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery reconciliation job: %w", err)
	}
	jm.reconciliationJob = job
	return jm, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.reconciliationJob == nil {
		return nil
	}
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.reconciliationJob != nil {
		jm.reconciliationJob.Stop()
	}
}
