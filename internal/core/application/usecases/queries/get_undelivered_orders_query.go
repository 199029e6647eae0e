package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetUndeliveredOrdersQueryIsNotConstructed = errors.New(
		"GetUndeliveredOrdersQuery must be created via NewGetUndeliveredOrdersQuery constructor",
	)
)

// GetUndeliveredOrdersQuery retrieves orders still waiting for delivery: not
// delivered and not cancelled. Used by the back office to follow up shipments.
//
// Example:
//
//	query := NewGetUndeliveredOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending orders: %w", err)
//	}
type GetUndeliveredOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUndeliveredOrdersQuery creates a parameterless query.
func NewGetUndeliveredOrdersQuery() GetUndeliveredOrdersQuery {
	return GetUndeliveredOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUndeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredOrdersQueryIsNotConstructed)
}

// GetUndeliveredOrdersQueryResponse summarizes an order waiting for delivery.
type GetUndeliveredOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomOrderID orderid.Identifier
	OrderStatus   string
	IsPaid        bool
	TotalPrice    float64
	CreatedAt     time.Time
}
