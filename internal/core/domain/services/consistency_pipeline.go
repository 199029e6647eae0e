package services

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

// PipelineOption customizes an OrderConsistencyPipeline.
type PipelineOption func(*OrderConsistencyPipeline)

// WithClock replaces time.Now as the source of paidAt/deliveredAt stamps.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *OrderConsistencyPipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// OrderConsistencyPipeline holds the pre-write stages every order write goes through.
//
//   - BeforeSave runs before a full-document save. New orders without a
//     customOrderId get one from the SequenceAllocator, then the delivery
//     rule is applied to the aggregate.
//   - BeforeUpdate runs before a partial update and rewrites the change-set so
//     that setting isDelivered also sets isPaid, both timestamps and the status.
//
// The stages hold no per-call state and are safe for concurrent use.
type OrderConsistencyPipeline struct {
	allocator *SequenceAllocator
	now       func() time.Time
	logger    *zap.Logger
	metrics   Metrics
}

// NewOrderConsistencyPipeline creates the pipeline.
func NewOrderConsistencyPipeline(
	allocator *SequenceAllocator,
	logger *zap.Logger,
	metrics Metrics,
	opts ...PipelineOption,
) (*OrderConsistencyPipeline, error) {
	if allocator == nil {
		return nil, errs.NewValueIsRequiredError("allocator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}

	p := &OrderConsistencyPipeline{
		allocator: allocator,
		now:       time.Now,
		logger:    logger.With(zap.String("component", "consistency_pipeline")),
		metrics:   metrics,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// BeforeSave prepares o for a full-document write.
//
// An identifier is allocated only when the order is new and has none; orders
// that were already persisted never reach the allocator, so their identifier
// cannot change. If allocation fails the error is returned and the order must
// not be written.
func (p *OrderConsistencyPipeline) BeforeSave(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.IsNew() && o.Identifier().IsZero() {
		id, err := p.allocator.Allocate(ctx, o.ShippingAddress().RegionKey())
		if err != nil {
			return fmt.Errorf("failed to assign custom order id: %w", err)
		}
		if err := o.AssignIdentifier(id); err != nil {
			return err
		}
	}

	if o.NormalizeDelivery(p.now()) {
		p.metrics.DeliveryNormalized(PathSave)
		p.logger.Debug("delivery rule applied",
			zap.String("orderId", o.ID().String()),
			zap.String("path", PathSave))
	}

	return o.ValidateIdentifier()
}

// BeforeUpdate rewrites a change-set that marks the order as delivered:
//
//	isPaid      = true
//	paidAt      = now, unless the change-set already carries a value
//	deliveredAt = now, unless the change-set already carries a value
//	orderStatus = "Delivered", unless it is already Delivered
//
// The values are written where the change-set keeps its fields, so flat and
// "$set" documents keep their shape. Any other change-set is returned untouched.
// BeforeUpdate never fails.
func (p *OrderConsistencyPipeline) BeforeUpdate(changes changeset.ChangeSet) changeset.ChangeSet {
	if !changes.SetsDelivered() {
		return changes
	}

	now := p.now()
	changes.Set(changeset.FieldIsPaid, true)
	if !changes.IsSpecified(changeset.FieldPaidAt) {
		changes.Set(changeset.FieldPaidAt, now)
	}
	if !changes.IsSpecified(changeset.FieldDeliveredAt) {
		changes.Set(changeset.FieldDeliveredAt, now)
	}
	if !statusIsDelivered(changes) {
		changes.Set(changeset.FieldOrderStatus, order.Delivered.String())
	}

	p.metrics.DeliveryNormalized(PathUpdate)
	p.logger.Debug("delivery rule applied",
		zap.String("path", PathUpdate),
		zap.Stringer("shape", changes.Shape()))

	return changes
}

func statusIsDelivered(changes changeset.ChangeSet) bool {
	v, ok := changes.Get(changeset.FieldOrderStatus)
	if !ok {
		return false
	}
	switch status := v.(type) {
	case string:
		return status == order.Delivered.String()
	case fmt.Stringer:
		return status.String() == order.Delivered.String()
	default:
		return false
	}
}
