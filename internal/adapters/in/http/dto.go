package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderItem is one order line on the wire.
type OrderItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
}

// ShippingAddress is the delivery destination on the wire.
type ShippingAddress struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Street     string `json:"street,omitempty"`
	Upazilla   string `json:"upazilla,omitempty"`
	State      string `json:"state,omitempty"`
	Division   string `json:"division,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PaymentResult is the payment receipt on the wire.
type PaymentResult struct {
	ID           string `json:"id,omitempty"`
	Status       string `json:"status,omitempty"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	User            string          `json:"user"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	IsDelivered     bool            `json:"isDelivered"`
}

// CreatedOrder is returned by POST /api/v1/orders.
type CreatedOrder struct {
	ID            string `json:"id"`
	CustomOrderID string `json:"customOrderId"`
}

// Order is the full order document.
type Order struct {
	ID              string          `json:"id"`
	CustomOrderID   string          `json:"customOrderId"`
	User            string          `json:"user"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	OrderStatus     string          `json:"orderStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PendingOrder is one entry of GET /api/v1/orders/pending.
type PendingOrder struct {
	ID            string    `json:"id"`
	CustomOrderID string    `json:"customOrderId"`
	OrderStatus   string    `json:"orderStatus"`
	IsPaid        bool      `json:"isPaid"`
	TotalPrice    float64   `json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Image describes an uploaded image.
type Image struct {
	PublicID  string     `json:"publicId"`
	URL       string     `json:"url"`
	Format    string     `json:"format,omitempty"`
	Width     int        `json:"width,omitempty"`
	Height    int        `json:"height,omitempty"`
	Size      int64      `json:"bytes,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (a ShippingAddress) toDomain() order.ShippingAddress {
	return order.ShippingAddress(a)
}

func (r NewOrder) items() ([]order.Item, error) {
	items := make([]order.Item, 0, len(r.OrderItems))
	for _, item := range r.OrderItems {
		product, err := kernel.UUIDFromString(item.Product)
		if err != nil {
			return nil, err
		}
		items = append(items, order.Item{
			Product:  product,
			Name:     item.Name,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
		})
	}
	return items, nil
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			Product:  item.Product.String(),
			Name:     item.Name,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
		})
	}

	var result *PaymentResult
	if r := o.PaymentResult(); r != nil {
		result = &PaymentResult{
			ID:           r.ID,
			Status:       r.Status,
			UpdateTime:   r.UpdateTime,
			EmailAddress: r.EmailAddress,
		}
	}

	prices := o.Prices()
	return Order{
		ID:              o.ID().String(),
		CustomOrderID:   o.Identifier().String(),
		User:            o.User().String(),
		OrderItems:      items,
		ShippingAddress: ShippingAddress(o.ShippingAddress()),
		PaymentMethod:   string(o.PaymentMethod()),
		PaymentResult:   result,
		ItemsPrice:      prices.Items,
		ShippingPrice:   prices.Shipping,
		TotalPrice:      prices.Total,
		IsPaid:          o.IsPaid(),
		PaidAt:          o.PaidAt(),
		IsDelivered:     o.IsDelivered(),
		DeliveredAt:     o.DeliveredAt(),
		OrderStatus:     o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func orderFromView(v queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem(item))
	}

	var result *PaymentResult
	if v.PaymentResult != nil {
		r := PaymentResult(*v.PaymentResult)
		result = &r
	}

	return Order{
		ID:              v.ID.String(),
		CustomOrderID:   v.CustomOrderID.String(),
		User:            v.User.String(),
		OrderItems:      items,
		ShippingAddress: ShippingAddress(v.ShippingAddress),
		PaymentMethod:   v.PaymentMethod,
		PaymentResult:   result,
		ItemsPrice:      v.ItemsPrice,
		ShippingPrice:   v.ShippingPrice,
		TotalPrice:      v.TotalPrice,
		IsPaid:          v.IsPaid,
		PaidAt:          v.PaidAt,
		IsDelivered:     v.IsDelivered,
		DeliveredAt:     v.DeliveredAt,
		OrderStatus:     v.OrderStatus,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}
