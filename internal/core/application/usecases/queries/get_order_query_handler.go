package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRow struct {
	ID            uuid.UUID
	CustomOrderID string
	UserID        uuid.UUID
	OrderItems    []OrderItemView     `gorm:"serializer:json"`
	Shipping      ShippingAddressView `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod string
	PaymentResult *PaymentResultView `gorm:"serializer:json"`
	ItemsPrice    float64
	ShippingPrice float64
	TotalPrice    float64
	IsPaid        bool
	PaidAt        *time.Time
	IsDelivered   bool
	DeliveredAt   *time.Time
	OrderStatus   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GetOrderQueryHandler reads a single order straight from the orders table,
// bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or an *errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Where("custom_order_id = ?", query.Identifier().String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.Identifier().String())
		}
		return GetOrderQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	user, err := kernel.UUIDFromBytes(row.UserID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items := row.OrderItems
	if items == nil {
		items = make([]OrderItemView, 0)
	}

	return GetOrderQueryResponse{
		ID:              id,
		CustomOrderID:   query.Identifier(),
		User:            user,
		Items:           items,
		ShippingAddress: row.Shipping,
		PaymentMethod:   row.PaymentMethod,
		PaymentResult:   row.PaymentResult,
		ItemsPrice:      row.ItemsPrice,
		ShippingPrice:   row.ShippingPrice,
		TotalPrice:      row.TotalPrice,
		IsPaid:          row.IsPaid,
		PaidAt:          row.PaidAt,
		IsDelivered:     row.IsDelivered,
		DeliveredAt:     row.DeliveredAt,
		OrderStatus:     row.OrderStatus,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}
