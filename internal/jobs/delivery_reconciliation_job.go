package jobs

import (
	"context"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DeliveryReconciler repairs delivered orders that break the delivery rule.
type DeliveryReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileDeliveredOrdersCommand) (int, error)
}

// DeliveryReconciliationJob periodically repairs legacy delivered orders.
type DeliveryReconciliationJob struct {
	handler  DeliveryReconciler
	cmd      commands.ReconcileDeliveredOrdersCommand
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewDeliveryReconciliationJob creates the job. batchSize bounds the orders
// repaired per run.
func NewDeliveryReconciliationJob(
	handler DeliveryReconciler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) (*DeliveryReconciliationJob, error) {
	cmd, err := commands.NewReconcileDeliveredOrdersCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "delivery_reconciliation_job"))

	return &DeliveryReconciliationJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}, nil
}

// Run performs one reconciliation pass.
func (j *DeliveryReconciliationJob) Run(ctx context.Context) {
	repaired, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.Error("Delivery reconciliation failed", zap.Error(err))
		return
	}
	if repaired > 0 {
		j.logger.Info("Delivered orders reconciled", zap.Int("count", repaired))
	}
}

// Start schedules the job.
func (j *DeliveryReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delivery reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *DeliveryReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Delivery reconciliation job stopped")
}
