package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order by its customOrderId.
//
// Example:
//
//	query, err := NewGetOrderQuery("DHA0007")
//	if err != nil {
//	    return err
//	}
//	order, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	identifier orderid.Identifier

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query from an identifier as received from a client.
func NewGetOrderQuery(identifier string) (GetOrderQuery, error) {
	id, err := orderid.ParseIdentifier(identifier)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{identifier: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Identifier returns the requested customOrderId.
func (q GetOrderQuery) Identifier() orderid.Identifier {
	return q.identifier
}

// OrderItemView is one order line of the read model.
type OrderItemView struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
}

// PaymentResultView is the stored payment receipt.
type PaymentResultView struct {
	ID           string `json:"id,omitempty"`
	Status       string `json:"status,omitempty"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

// ShippingAddressView is the delivery destination of the read model.
type ShippingAddressView struct {
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

// GetOrderQueryResponse is the read model of a complete order document.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	CustomOrderID   orderid.Identifier
	User            kernel.UUID
	Items           []OrderItemView
	ShippingAddress ShippingAddressView
	PaymentMethod   string
	PaymentResult   *PaymentResultView
	ItemsPrice      float64
	ShippingPrice   float64
	TotalPrice      float64
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	OrderStatus     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
