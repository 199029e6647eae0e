package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Item is a single order line. Prices are taken as already calculated by the cart.
type Item struct {
	Product  kernel.UUID
	Name     string
	Quantity int
	Image    string
	Price    float64
}

// Validate checks the product reference, quantity and price of the line.
func (i Item) Validate() error {
	var quantityErr, priceErr error
	if i.Quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	if i.Price < 0 {
		priceErr = errs.NewValueIsOutOfRangeError("price", i.Price, 0, "unbounded")
	}
	return errors.Join(i.Product.Validate(), quantityErr, priceErr)
}
