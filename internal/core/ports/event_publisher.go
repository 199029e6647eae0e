package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order integration events to other services.
// Publishing happens after commit; a failed publish never undoes the write.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.ChangedEvent) error
}
