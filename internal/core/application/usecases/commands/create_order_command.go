package commands

import (
	"errors"
	"slices"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new order.
// The customOrderId is not part of the command: it is allocated while the order
// is being saved.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(),
//	    userID,
//	    []order.Item{{Product: productID, Name: "Saree", Quantity: 1, Price: 3200}},
//	    order.ShippingAddress{State: "Dhaka"},
//	    order.Cash,
//	    order.Prices{Items: 3200, Shipping: 60, Total: 3260},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	id, err := handler.Handle(ctx, cmd) // "DHA0001"
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	user          kernel.UUID
	items         []order.Item
	address       order.ShippingAddress
	paymentMethod order.PaymentMethod
	prices        order.Prices
	isPaid        bool
	isDelivered   bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order.
// Validates identifiers, lines, payment method and prices.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	user kernel.UUID,
	items []order.Item,
	address order.ShippingAddress,
	paymentMethod order.PaymentMethod,
	prices order.Prices,
) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setUser(user),
		c.setItems(items),
		c.setPaymentMethod(paymentMethod),
		c.setPrices(prices),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	c.address = address

	return c, nil
}

// WithPaymentState returns a copy of the command that creates the order already
// paid and/or delivered (back-office entry). A delivered order is always saved as paid.
func (c CreateOrderCommand) WithPaymentState(isPaid, isDelivered bool) CreateOrderCommand {
	c.isPaid = isPaid
	c.isDelivered = isDelivered
	return c
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) User() kernel.UUID {
	return c.user
}

func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

func (c CreateOrderCommand) ShippingAddress() order.ShippingAddress {
	return c.address
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) Prices() order.Prices {
	return c.prices
}

func (c CreateOrderCommand) IsPaid() bool {
	return c.isPaid
}

func (c CreateOrderCommand) IsDelivered() bool {
	return c.isDelivered
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUser(user kernel.UUID) error {
	if err := user.Validate(); err != nil {
		return err
	}
	c.user = user
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setPrices(prices order.Prices) error {
	if err := prices.Validate(); err != nil {
		return err
	}
	c.prices = prices
	return nil
}
