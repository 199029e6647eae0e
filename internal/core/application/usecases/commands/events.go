package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// publishChanged sends an OrderChanged event for a committed write. The write is
// already durable at this point, so a publish failure is logged and swallowed.
func publishChanged(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
	kind order.EventKind,
	o *order.Order,
) {
	if publisher == nil {
		return
	}

	event := order.NewChangedEvent(kind, o, time.Now().UTC())
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish order event",
			zap.String("kind", string(kind)),
			zap.String("customOrderId", event.CustomOrderID),
			zap.Error(err))
	}
}

func componentLogger(logger *zap.Logger, component string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("component", component))
}
