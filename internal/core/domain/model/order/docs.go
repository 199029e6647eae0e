// Package order provides the Order aggregate of the storefront and the rules
// that keep its payment and delivery state consistent.
//
// The package includes:
//   - Order: the aggregate root (lines, shipping address, prices, payment and delivery state)
//   - Status: Processing, Shipped, Delivered, Cancelled
//   - PaymentMethod and PaymentResult
//   - ShippingAddress: the source of the identifier region key
//   - ChangedEvent: the integration event emitted after committed writes
//
// Key business rules:
//   - Delivery implies payment: NormalizeDelivery sets IsPaid, PaidAt, DeliveredAt
//     and Status=Delivered for delivered orders, and is idempotent
//   - The customOrderId is assigned exactly once (AssignIdentifier) and is required
//     on every order that is no longer new (ValidateIdentifier)
//   - New orders start in Processing with no payment or delivery recorded
package order
