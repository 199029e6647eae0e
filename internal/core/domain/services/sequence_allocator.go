package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

// ErrAllocationFailed is the sentinel matched by every *AllocationFailedError.
var ErrAllocationFailed = errors.New("identifier allocation failed")

// AllocationFailedError reports that the counter store could not produce the
// next value for a region. The order must not be persisted.
type AllocationFailedError struct {
	Region orderid.RegionKey
	Cause  error
}

// NewAllocationFailedError wraps cause for region.
func NewAllocationFailedError(region orderid.RegionKey, cause error) *AllocationFailedError {
	return &AllocationFailedError{Region: region, Cause: cause}
}

func (e *AllocationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: region %q (cause: %v)", ErrAllocationFailed, e.Region, e.Cause)
	}
	return fmt.Sprintf("%s: region %q", ErrAllocationFailed, e.Region)
}

// Unwrap exposes both the sentinel and the store failure to errors.Is/As.
func (e *AllocationFailedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrAllocationFailed}
	}
	return []error{ErrAllocationFailed, e.Cause}
}

// SequenceAllocator mints order identifiers of the form <region><sequence>.
//
// Each call performs exactly one IncrementAndFetch on the counter store keyed by
// the region. The store's atomic upsert is the only serialization point, so two
// allocations for the same region (in this process or any other) never return
// the same identifier. The allocator keeps no counter state and takes no lock.
//
// Gaps in a region's sequence appear only when an allocation succeeds and the
// subsequent order write fails.
//
// Example:
//
//	allocator, err := services.NewSequenceAllocator(counterStore, logger, services.NopMetrics{})
//	if err != nil {
//	    return err
//	}
//	id, err := allocator.Allocate(ctx, "DHA") // "DHA0007" on the seventh call
//	if errors.Is(err, services.ErrAllocationFailed) {
//	    // do not persist the order
//	}
type SequenceAllocator struct {
	store   ports.CounterStore
	logger  *zap.Logger
	metrics Metrics
}

// NewSequenceAllocator creates an allocator over store.
func NewSequenceAllocator(store ports.CounterStore, logger *zap.Logger, metrics Metrics) (*SequenceAllocator, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("counterStore")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}

	return &SequenceAllocator{
		store:   store,
		logger:  logger.With(zap.String("component", "sequence_allocator")),
		metrics: metrics,
	}, nil
}

// Allocate reserves the next sequence value of region and returns the formatted identifier.
func (a *SequenceAllocator) Allocate(ctx context.Context, region orderid.RegionKey) (orderid.Identifier, error) {
	if err := region.Validate(); err != nil {
		return "", err
	}

	value, err := a.store.IncrementAndFetch(ctx, region.String())
	if err != nil {
		a.metrics.AllocationFailed(region.String())
		a.logger.Error("failed to increment region counter",
			zap.String("region", region.String()),
			zap.Error(err))
		return "", NewAllocationFailedError(region, err)
	}

	sequence, err := orderid.NewSequence(value)
	if err != nil {
		a.metrics.AllocationFailed(region.String())
		return "", NewAllocationFailedError(region, err)
	}

	id, err := orderid.NewIdentifier(region, sequence)
	if err != nil {
		a.metrics.AllocationFailed(region.String())
		return "", NewAllocationFailedError(region, err)
	}

	a.metrics.IdentifierAllocated(region.String())
	a.logger.Debug("identifier allocated", zap.String("customOrderId", id.String()))
	return id, nil
}
