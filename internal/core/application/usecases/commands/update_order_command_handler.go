package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// UpdateOrderCommandHandler applies partial updates. Every change-set passes
// through BeforeUpdate first, so marking an order delivered also marks it paid
// whichever shape the caller used.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pipeline   *services.OrderConsistencyPipeline
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

// NewUpdateOrderCommandHandler creates a handler for partial order updates.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pipeline *services.OrderConsistencyPipeline,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		publisher:  publisher,
		logger:     componentLogger(logger, "update_order_handler"),
	}
}

// Handle rewrites the change-set, applies it and returns the order as stored after the update.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	changes := h.pipeline.BeforeUpdate(cmd.Changes())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	if err := repo.ApplyChanges(ctx, cmd.OrderID(), changes); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", cmd.OrderID(), err)
	}

	updated, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	kind := order.EventUpdated
	if changes.SetsDelivered() {
		kind = order.EventDelivered
	}
	publishChanged(ctx, h.publisher, h.logger, kind, updated)

	return updated, nil
}
