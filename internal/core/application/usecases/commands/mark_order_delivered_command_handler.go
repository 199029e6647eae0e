package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// MarkOrderDeliveredCommandHandler loads an order, marks it delivered and saves
// the full document through BeforeSave. The order already exists, so no
// identifier is allocated.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	pipeline   *services.OrderConsistencyPipeline
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

// NewMarkOrderDeliveredCommandHandler creates the handler.
func NewMarkOrderDeliveredCommandHandler(
	uowFactory OrderUoWFactory,
	pipeline *services.OrderConsistencyPipeline,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		publisher:  publisher,
		logger:     componentLogger(logger, "mark_order_delivered_handler"),
	}
}

// Handle marks the order delivered and returns it as saved.
func (h *MarkOrderDeliveredCommandHandler) Handle(
	ctx context.Context,
	cmd MarkOrderDeliveredCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	o.MarkDelivered(time.Now().UTC())
	if err = h.pipeline.BeforeSave(ctx, o); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishChanged(ctx, h.publisher, h.logger, order.EventDelivered, o)
	return o, nil
}
