package order

import (
	"errors"
	"slices"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrIdentifierIsRequired is the validation failure raised when an order that is
	// no longer new reaches a write without its customOrderId.
	ErrIdentifierIsRequired = errs.NewValueIsRequiredErrorWithCause(
		"customOrderId",
		errors.New("custom order id is required once the order is persisted"),
	)

	// ErrIdentifierIsImmutable is returned when an identifier is assigned twice.
	ErrIdentifierIsImmutable = errs.NewValueIsInvalidErrorWithCause(
		"customOrderId",
		errors.New("custom order id is already assigned"),
	)

	// ErrItemsAreRequired is returned when an order has no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("orderItems")
)

// Prices are the amounts calculated by the cart. They are stored as given.
type Prices struct {
	Items    float64
	Shipping float64
	Total    float64
}

// Validate rejects negative amounts.
func (p Prices) Validate() error {
	var itemsErr, shippingErr, totalErr error
	if p.Items < 0 {
		itemsErr = errs.NewValueIsOutOfRangeError("itemsPrice", p.Items, 0, "unbounded")
	}
	if p.Shipping < 0 {
		shippingErr = errs.NewValueIsOutOfRangeError("shippingPrice", p.Shipping, 0, "unbounded")
	}
	if p.Total < 0 {
		totalErr = errs.NewValueIsOutOfRangeError("totalPrice", p.Total, 0, "unbounded")
	}
	return errors.Join(itemsErr, shippingErr, totalErr)
}

// Order is the aggregate root of the storefront. It owns the customer's order lines,
// the shipping address and the payment/delivery state.
//
// Order follows these invariants:
//   - Delivery implies payment: once IsDelivered is true, IsPaid is true, PaidAt and
//     DeliveredAt are set and Status is Delivered (after NormalizeDelivery)
//   - The custom order identifier is assigned once and never replaced
//   - A persisted (non-new) order always carries its identifier
//   - Can only be created through NewOrder or RestoreOrder
//
// Order is not safe for concurrent mutation; each request works on its own instance.
type Order struct {
	id              kernel.UUID
	identifier      orderid.Identifier
	user            kernel.UUID
	items           []Item
	shippingAddress ShippingAddress
	paymentMethod   PaymentMethod
	paymentResult   *PaymentResult
	prices          Prices

	isPaid      bool
	paidAt      *time.Time
	isDelivered bool
	deliveredAt *time.Time
	status      Status

	createdAt time.Time
	updatedAt time.Time

	// isNew is true until the order has been written to storage once
	isNew bool

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new, not yet persisted order in Processing status.
// The custom identifier is left empty: it is assigned by the consistency
// pipeline right before the first write.
//
// Example:
//
//	o, err := order.NewOrder(
//	    kernel.NewUUID(),
//	    userID,
//	    []order.Item{{Product: productID, Name: "Panjabi", Quantity: 1, Price: 1450}},
//	    order.ShippingAddress{State: "Dhaka", City: "Dhaka"},
//	    order.Cash,
//	    order.Prices{Items: 1450, Shipping: 60, Total: 1510},
//	)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	user kernel.UUID,
	items []Item,
	address ShippingAddress,
	paymentMethod PaymentMethod,
	prices Prices,
) (*Order, error) {
	o := &Order{
		id:              id,
		user:            user,
		items:           slices.Clone(items),
		shippingAddress: address,
		paymentMethod:   paymentMethod,
		prices:          prices,
		status:          Processing,
		isNew:           true,
		isConstructed:   true,
	}

	if err := errors.Join(
		id.Validate(),
		user.Validate(),
		validateItems(items),
		paymentMethod.Validate(),
		prices.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the complete state of an order, used to move orders in and out of storage.
type Snapshot struct {
	ID              kernel.UUID
	Identifier      orderid.Identifier
	User            kernel.UUID
	Items           []Item
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentResult   *PaymentResult
	Prices          Prices
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds a persisted order. Restored orders are never new.
//
// The delivery invariant is deliberately not checked here: rows written by older
// releases may violate it and are repaired by re-saving them through the pipeline.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.User.Validate(),
		s.Status.Validate(),
		s.PaymentMethod.Validate(),
		s.Prices.Validate(),
	); err != nil {
		return nil, err
	}

	var paymentResult *PaymentResult
	if s.PaymentResult != nil {
		pr := *s.PaymentResult
		paymentResult = &pr
	}

	return &Order{
		id:              s.ID,
		identifier:      s.Identifier,
		user:            s.User,
		items:           slices.Clone(s.Items),
		shippingAddress: s.ShippingAddress,
		paymentMethod:   s.PaymentMethod,
		paymentResult:   paymentResult,
		prices:          s.Prices,
		isPaid:          s.IsPaid,
		paidAt:          copyTime(s.PaidAt),
		isDelivered:     s.IsDelivered,
		deliveredAt:     copyTime(s.DeliveredAt),
		status:          s.Status,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		isNew:           false,
		isConstructed:   true,
	}, nil
}

// Snapshot returns a copy of the order state.
func (o *Order) Snapshot() Snapshot {
	var paymentResult *PaymentResult
	if o.paymentResult != nil {
		pr := *o.paymentResult
		paymentResult = &pr
	}

	return Snapshot{
		ID:              o.id,
		Identifier:      o.identifier,
		User:            o.user,
		Items:           slices.Clone(o.items),
		ShippingAddress: o.shippingAddress,
		PaymentMethod:   o.paymentMethod,
		PaymentResult:   paymentResult,
		Prices:          o.prices,
		IsPaid:          o.isPaid,
		PaidAt:          copyTime(o.paidAt),
		IsDelivered:     o.isDelivered,
		DeliveredAt:     copyTime(o.deliveredAt),
		Status:          o.status,
		CreatedAt:       o.createdAt,
		UpdatedAt:       o.updatedAt,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ValidateIdentifier is the write-time check on customOrderId: an order that is
// no longer new must carry an identifier. New orders pass because their
// identifier is assigned by the pipeline just before the first write.
func (o *Order) ValidateIdentifier() error {
	if !o.isNew && o.identifier.IsZero() {
		return ErrIdentifierIsRequired
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's technical identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Identifier returns the human-readable customOrderId, empty until assigned.
func (o *Order) Identifier() orderid.Identifier {
	return o.identifier
}

// User returns the customer who placed the order.
func (o *Order) User() kernel.UUID {
	return o.user
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// ShippingAddress returns the delivery destination.
func (o *Order) ShippingAddress() ShippingAddress {
	return o.shippingAddress
}

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentResult returns the provider receipt, nil for unpaid or cash orders.
func (o *Order) PaymentResult() *PaymentResult {
	if o.paymentResult == nil {
		return nil
	}
	pr := *o.paymentResult
	return &pr
}

// Prices returns the stored amounts.
func (o *Order) Prices() Prices {
	return o.prices
}

// IsPaid reports whether payment has been received.
func (o *Order) IsPaid() bool {
	return o.isPaid
}

// PaidAt returns when payment was recorded, nil if unknown.
func (o *Order) PaidAt() *time.Time {
	return copyTime(o.paidAt)
}

// IsDelivered reports whether the order reached the customer.
func (o *Order) IsDelivered() bool {
	return o.isDelivered
}

// DeliveredAt returns when delivery was recorded, nil if unknown.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation time recorded by storage.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last write time recorded by storage.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsNew reports whether the order has never been written to storage.
func (o *Order) IsNew() bool {
	return o.isNew
}

// AssignIdentifier sets the customOrderId. It can be called once per order.
func (o *Order) AssignIdentifier(id orderid.Identifier) error {
	if !o.identifier.IsZero() {
		return ErrIdentifierIsImmutable
	}
	if id.IsZero() {
		return errs.NewValueIsRequiredError("customOrderId")
	}

	o.identifier = id
	return nil
}

// MarkPersisted records that the order now exists in storage.
func (o *Order) MarkPersisted(createdAt, updatedAt time.Time) {
	o.isNew = false
	if o.createdAt.IsZero() {
		o.createdAt = createdAt
	}
	o.updatedAt = updatedAt
}

// MarkPaid records a payment. An existing PaidAt is kept.
func (o *Order) MarkPaid(at time.Time, result *PaymentResult) {
	o.isPaid = true
	if o.paidAt == nil {
		o.paidAt = &at
	}
	if result != nil {
		pr := *result
		o.paymentResult = &pr
	}
}

// MarkDelivered records delivery and applies the delivery rule at the same instant.
func (o *Order) MarkDelivered(at time.Time) {
	o.isDelivered = true
	o.NormalizeDelivery(at)
}

// ChangeStatus sets a new status. Only validity is checked; the delivery
// rule is re-applied on the next write.
func (o *Order) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// NormalizeDelivery restores the delivery-implies-payment invariant for a
// delivered order:
//   - IsPaid becomes true and PaidAt is stamped with now if unset
//   - DeliveredAt is stamped with now if unset
//   - Status becomes Delivered
//
// Orders that are not delivered are left alone. The rule is idempotent and
// reports whether anything changed.
func (o *Order) NormalizeDelivery(now time.Time) bool {
	if !o.isDelivered {
		return false
	}

	changed := false
	if !o.isPaid {
		o.isPaid = true
		changed = true
	}
	if o.paidAt == nil {
		paidAt := now
		o.paidAt = &paidAt
		changed = true
	}
	if o.deliveredAt == nil {
		deliveredAt := now
		o.deliveredAt = &deliveredAt
		changed = true
	}
	if o.status != Delivered {
		o.status = Delivered
		changed = true
	}

	return changed
}

// SatisfiesDeliveryInvariant reports whether the order is consistent: either not
// delivered, or delivered with payment and both timestamps recorded and status Delivered.
func (o *Order) SatisfiesDeliveryInvariant() bool {
	if !o.isDelivered {
		return true
	}
	return o.isPaid && o.paidAt != nil && o.deliveredAt != nil && o.status == Delivered
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	itemErrs := make([]error, 0, len(items))
	for _, item := range items {
		itemErrs = append(itemErrs, item.Validate())
	}
	return errors.Join(itemErrs...)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
