package order

import "time"

// EventKind names what happened to an order.
type EventKind string

const (
	EventCreated   EventKind = "OrderCreated"
	EventUpdated   EventKind = "OrderUpdated"
	EventDelivered EventKind = "OrderDelivered"
)

// ChangedEvent is published after an order write has been committed.
type ChangedEvent struct {
	Kind          EventKind  `json:"kind"`
	OrderID       string     `json:"orderId"`
	CustomOrderID string     `json:"customOrderId"`
	Status        string     `json:"orderStatus"`
	IsPaid        bool       `json:"isPaid"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	IsDelivered   bool       `json:"isDelivered"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// NewChangedEvent captures the current payment and delivery state of the order.
func NewChangedEvent(kind EventKind, o *Order, occurredAt time.Time) ChangedEvent {
	return ChangedEvent{
		Kind:          kind,
		OrderID:       o.ID().String(),
		CustomOrderID: o.Identifier().String(),
		Status:        o.Status().String(),
		IsPaid:        o.IsPaid(),
		PaidAt:        o.PaidAt(),
		IsDelivered:   o.IsDelivered(),
		DeliveredAt:   o.DeliveredAt(),
		OccurredAt:    occurredAt,
	}
}
