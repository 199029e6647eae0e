package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("customOrderId", "DHA0007")

		assert.Equal(t, "customOrderId", err.ParamName)
		assert.Equal(t, "DHA0007", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: DHA0007", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: order, ID is: 42 (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("paymentMethod")

		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: paymentMethod", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status is invalid", errors.New("Lost is not a valid status"))

		assert.Equal(t, "value is invalid: status is invalid (cause: Lost is not a valid status)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("itemsPrice", -1.5, 0, "unbounded")

		assert.Equal(t, -1.5, err.Value)
		assert.Equal(t, "value is invalid: -1.5 is itemsPrice, min value is 0, max value is unbounded", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("sequence", 0, 1, 10, errors.New("counter reset"))

		assert.Equal(t,
			"value is invalid: 0 is sequence, min value is 1, max value is 10 (cause: counter reset)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "first\nsecond", 0, 10)

		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("customOrderId")
	assert.Equal(t, "value is required: customOrderId", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("customOrderId", errors.New("order is not new"))
	assert.Equal(t, "value is required: customOrderId (cause: order is not new)", withCause.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving order: %w", errs.NewValueIsRequiredError("customOrderId"))

	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	require.NotErrorIs(t, wrapped, errs.ErrValueIsInvalid)

	var required *errs.ValueIsRequiredError
	require.ErrorAs(t, wrapped, &required)
	assert.Equal(t, "customOrderId", required.ParamName)

	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "x"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.ErrValueIsOutOfRange)
}

func TestObjectAlreadyExistsError(t *testing.T) {
	cause := errors.New("duplicated key not allowed")
	err := errs.NewObjectAlreadyExistsErrorWithCause("customOrderId", "DHA0001", cause)

	assert.Equal(t,
		"object already exists: customOrderId is DHA0001 (cause: duplicated key not allowed)",
		err.Error())
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	require.ErrorIs(t, err, cause)

	bare := errs.NewObjectAlreadyExistsErrorWithCause("customOrderId", "DHA0001", nil)
	assert.Equal(t, "object already exists: customOrderId is DHA0001", bare.Error())
	require.ErrorIs(t, bare, errs.ErrObjectAlreadyExists)
}
