// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Order lines and the payment receipt are stored as JSONB documents; the
// shipping address is flattened into shipping_* columns.
type OrderDTO struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CustomOrderID string             `gorm:"type:varchar(32);not null;uniqueIndex:idx_orders_custom_order_id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	OrderItems    []ItemDTO          `gorm:"serializer:json;type:jsonb;not null"`
	Shipping      ShippingAddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod string             `gorm:"type:varchar(16);not null"`
	PaymentResult *PaymentResultDTO  `gorm:"serializer:json;type:jsonb"`
	ItemsPrice    float64            `gorm:"not null;default:0"`
	ShippingPrice float64            `gorm:"not null;default:0"`
	TotalPrice    float64            `gorm:"not null;default:0"`
	IsPaid        bool               `gorm:"not null;default:false"`
	PaidAt        *time.Time
	IsDelivered   bool `gorm:"not null;default:false"`
	DeliveredAt   *time.Time
	OrderStatus   string `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the order_items JSON array.
type ItemDTO struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
}

// ShippingAddressDTO is embedded into the orders table.
type ShippingAddressDTO struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	Street     string
	Upazilla   string
	State      string
	Division   string
	City       string
	PostalCode string
	ZipCode    string
	Country    string
}

// PaymentResultDTO is the payment_result JSON document.
type PaymentResultDTO struct {
	ID           string `json:"id,omitempty"`
	Status       string `json:"status,omitempty"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make([]ItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, ItemDTO{
			Product:  item.Product.String(),
			Name:     item.Name,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
		})
	}

	var paymentResult *PaymentResultDTO
	if s.PaymentResult != nil {
		paymentResult = &PaymentResultDTO{
			ID:           s.PaymentResult.ID,
			Status:       s.PaymentResult.Status,
			UpdateTime:   s.PaymentResult.UpdateTime,
			EmailAddress: s.PaymentResult.EmailAddress,
		}
	}

	return OrderDTO{
		ID:            s.ID.Bytes(),
		CustomOrderID: s.Identifier.String(),
		UserID:        s.User.Bytes(),
		OrderItems:    items,
		Shipping:      ShippingAddressDTO(s.ShippingAddress),
		PaymentMethod: string(s.PaymentMethod),
		PaymentResult: paymentResult,
		ItemsPrice:    s.Prices.Items,
		ShippingPrice: s.Prices.Shipping,
		TotalPrice:    s.Prices.Total,
		IsPaid:        s.IsPaid,
		PaidAt:        s.PaidAt,
		IsDelivered:   s.IsDelivered,
		DeliveredAt:   s.DeliveredAt,
		OrderStatus:   s.Status.String(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	user, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.OrderStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.OrderItems))
	itemErrs := make([]error, 0)
	for _, item := range dto.OrderItems {
		product, productErr := kernel.UUIDFromString(item.Product)
		if productErr != nil {
			itemErrs = append(itemErrs, productErr)
			continue
		}
		items = append(items, order.Item{
			Product:  product,
			Name:     item.Name,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
		})
	}
	if err = errors.Join(itemErrs...); err != nil {
		return nil, err
	}

	var paymentResult *order.PaymentResult
	if dto.PaymentResult != nil {
		paymentResult = &order.PaymentResult{
			ID:           dto.PaymentResult.ID,
			Status:       dto.PaymentResult.Status,
			UpdateTime:   dto.PaymentResult.UpdateTime,
			EmailAddress: dto.PaymentResult.EmailAddress,
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Identifier:      orderid.Identifier(dto.CustomOrderID),
		User:            user,
		Items:           items,
		ShippingAddress: order.ShippingAddress(dto.Shipping),
		PaymentMethod:   order.PaymentMethod(dto.PaymentMethod),
		PaymentResult:   paymentResult,
		Prices: order.Prices{
			Items:    dto.ItemsPrice,
			Shipping: dto.ShippingPrice,
			Total:    dto.TotalPrice,
		},
		IsPaid:      dto.IsPaid,
		PaidAt:      dto.PaidAt,
		IsDelivered: dto.IsDelivered,
		DeliveredAt: dto.DeliveredAt,
		Status:      status,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}
