package order_test

import (
	"fmt"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Processing))
		assert.Equal(t, 2, int(order.Shipped))
		assert.Equal(t, 3, int(order.Delivered))
		assert.Equal(t, 4, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Processing, order.Shipped, order.Delivered, order.Cancelled} {
			t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), "status is invalid")
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Processing", order.Processing.String())
	assert.Equal(t, "Shipped", order.Shipped.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every valid status", func(t *testing.T) {
		for _, status := range []order.Status{order.Processing, order.Shipped, order.Delivered, order.Cancelled} {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "delivered", "Lost"} {
			status, err := order.ParseStatus(name)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, name)
			assert.Equal(t, order.Unknown, status)
		}
	})
}

func TestPaymentMethod_Validate(t *testing.T) {
	require.NoError(t, order.Cash.Validate())
	require.NoError(t, order.Card.Validate())

	require.ErrorIs(t, order.PaymentMethod("").Validate(), errs.ErrValueIsRequired)
	require.ErrorIs(t, order.PaymentMethod("crypto").Validate(), errs.ErrValueIsInvalid)

	method, err := order.ParsePaymentMethod("card")
	require.NoError(t, err)
	assert.Equal(t, order.Card, method)
}

func TestShippingAddress_RegionKey(t *testing.T) {
	testCases := []struct {
		name     string
		address  order.ShippingAddress
		expected string
	}{
		{name: "state", address: order.ShippingAddress{State: "Dhaka", Division: "Chittagong", City: "Sylhet"}, expected: "DHA"},
		{name: "division only", address: order.ShippingAddress{Division: "Chittagong"}, expected: "CHI"},
		{name: "city only", address: order.ShippingAddress{City: "Sylhet"}, expected: "SYL"},
		{name: "nothing usable", address: order.ShippingAddress{Street: "Road 12", Country: "Bangladesh"}, expected: "GEN"},
		{name: "short state", address: order.ShippingAddress{State: "d"}, expected: "D"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.address.RegionKey().String())
		})
	}
}
