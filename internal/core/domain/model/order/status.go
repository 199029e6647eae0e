package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the fulfilment state of an order.
//
// Status values:
//
//	Processing ──> Shipped ──> Delivered
//	     │            │
//	     └────────────┴──────> Cancelled
//
// Only one transition is enforced by the order domain: marking an order as
// delivered always moves it to Delivered (see Order.NormalizeDelivery).
// Delivered absorbs that rule but manual status changes away from it are
// not prevented here.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Processing is the initial status of every new order.
	Processing

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the customer received the order.
	Delivered

	// Cancelled indicates the order will not be fulfilled.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus converts the stored/wire name of a status ("Processing",
// "Shipped", "Delivered", "Cancelled") into a Status. Matching is exact.
//
// Example:
//
//	status, err := order.ParseStatus("Shipped")
//	if err != nil {
//	    return err // *errs.ValueIsInvalidError
//	}
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the four valid statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
