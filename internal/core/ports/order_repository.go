// Package ports defines the contracts between the order domain and infrastructure:
// persistence, the atomic counter behind identifiers, event publishing and image storage.
// These interfaces keep the domain free of storage details and make it testable.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Implementations run the identifier validation hook (Order.ValidateIdentifier)
// before every full-document write. They do NOT run the consistency pipeline:
// callers invoke the pipeline stage first and then the repository, so the
// composition stays explicit.
type OrderRepository interface {
	// Add inserts a new order. The order must already carry its customOrderId;
	// a duplicate customOrderId is reported as an error wrapping gorm.ErrDuplicatedKey
	// in the GORM implementation. On success the order is marked as persisted.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the complete state of an existing order (full-document save).
	// The customOrderId column is never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// ApplyChanges applies a partial update to the order identified by id.
	// Only whitelisted fields may be changed; customOrderId is not among them.
	//
	// Example:
	//   cs, _ := changeset.Parse(map[string]any{"$set": map[string]any{"isDelivered": true}})
	//   cs = pipeline.BeforeUpdate(cs)
	//   if err := repo.ApplyChanges(ctx, id, cs); err != nil {
	//       return fmt.Errorf("failed to update order: %w", err)
	//   }
	ApplyChanges(ctx context.Context, id kernel.UUID, changes changeset.ChangeSet) error

	// Get retrieves an order by its technical identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIdentifier retrieves an order by its customOrderId.
	GetByIdentifier(ctx context.Context, identifier orderid.Identifier) (*order.Order, error)

	// GetAllViolatingDeliveryInvariant returns up to limit delivered orders that are
	// not paid, lack a payment or delivery time, or are not in Delivered status.
	GetAllViolatingDeliveryInvariant(ctx context.Context, limit int) ([]*order.Order, error)
}
