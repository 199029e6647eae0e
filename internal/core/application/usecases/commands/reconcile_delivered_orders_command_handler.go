package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// ReconcileDeliveredOrdersCommandHandler repairs persisted orders that are
// delivered but not consistently paid. All repairs of one run share a transaction.
type ReconcileDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	pipeline   *services.OrderConsistencyPipeline
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

// NewReconcileDeliveredOrdersCommandHandler creates the handler.
func NewReconcileDeliveredOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	pipeline *services.OrderConsistencyPipeline,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) ReconcileDeliveredOrdersCommandHandler {
	return ReconcileDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		publisher:  publisher,
		logger:     componentLogger(logger, "reconcile_delivered_orders_handler"),
	}
}

// Handle returns the number of orders repaired.
func (h *ReconcileDeliveredOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileDeliveredOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	violating, err := repo.GetAllViolatingDeliveryInvariant(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(violating) == 0 {
		return 0, nil
	}

	// Orders the pipeline rejects are skipped so the rest of the batch still
	// progresses. A failed update aborts the transaction and the run.
	repaired := make([]*order.Order, 0, len(violating))
	for _, o := range violating {
		if err = h.pipeline.BeforeSave(ctx, o); err != nil {
			h.logger.Warn("skipping order that cannot be reconciled",
				zap.String("orderId", o.ID().String()),
				zap.String("customOrderId", o.Identifier().String()),
				zap.Error(err))
			continue
		}
		if err = repo.Update(ctx, o); err != nil {
			return 0, fmt.Errorf("failed to save order %s: %w", o.Identifier(), err)
		}
		repaired = append(repaired, o)
	}
	if len(repaired) == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, o := range repaired {
		publishChanged(ctx, h.publisher, h.logger, order.EventUpdated, o)
	}
	h.logger.Info("delivered orders reconciled",
		zap.Int("count", len(repaired)),
		zap.Int("skipped", len(violating)-len(repaired)))

	return len(repaired), nil
}
