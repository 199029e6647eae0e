package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler places new orders.
//
// The consistency pipeline runs before the transaction is opened: the region
// counter is incremented in its own statement, so concurrent creations in the
// same region do not hold the counter row for the length of the insert.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pipeline, publisher, logger)
//	id, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrAllocationFailed) {
//	    // nothing was written
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pipeline   *services.OrderConsistencyPipeline
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pipeline *services.OrderConsistencyPipeline,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		publisher:  publisher,
		logger:     componentLogger(logger, "create_order_handler"),
	}
}

// Handle builds the order, runs BeforeSave and inserts it. It returns the
// allocated customOrderId.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (orderid.Identifier, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.User(),
		cmd.Items(),
		cmd.ShippingAddress(),
		cmd.PaymentMethod(),
		cmd.Prices(),
	)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if cmd.IsPaid() {
		o.MarkPaid(now, nil)
	}
	if cmd.IsDelivered() {
		o.MarkDelivered(now)
	}

	if err = h.pipeline.BeforeSave(ctx, o); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return "", fmt.Errorf("failed to add order %s: %w", o.Identifier(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.logger.Info("order created",
		zap.String("orderId", o.ID().String()),
		zap.String("customOrderId", o.Identifier().String()))
	publishChanged(ctx, h.publisher, h.logger, order.EventCreated, o)

	return o.Identifier(), nil
}
