package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	Cash PaymentMethod = "cash"
	Card PaymentMethod = "card"
)

// ParsePaymentMethod accepts "cash" or "card".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate rejects anything other than Cash and Card.
func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, Card:
		return nil
	case "":
		return errs.NewValueIsRequiredError("paymentMethod")
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod",
			fmt.Errorf("%q is not one of cash, card", string(m)),
		)
	}
}

// PaymentResult is the receipt returned by the payment provider for card payments.
type PaymentResult struct {
	ID           string
	Status       string
	UpdateTime   string
	EmailAddress string
}
