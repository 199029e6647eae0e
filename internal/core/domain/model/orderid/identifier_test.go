package orderid_test

import (
	"testing"

	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_String(t *testing.T) {
	testCases := []struct {
		value    int64
		expected string
	}{
		{value: 1, expected: "0001"},
		{value: 7, expected: "0007"},
		{value: 42, expected: "0042"},
		{value: 999, expected: "0999"},
		{value: 9999, expected: "9999"},
		{value: 10000, expected: "10000"},
		{value: 1234567, expected: "1234567"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			seq, err := orderid.NewSequence(tc.value)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, seq.String())
		})
	}
}

func TestNewSequence_RejectsNonPositive(t *testing.T) {
	for _, value := range []int64{0, -1, -9999} {
		_, err := orderid.NewSequence(value)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}

func TestNewIdentifier(t *testing.T) {
	t.Run("joins region and padded sequence", func(t *testing.T) {
		id, err := orderid.NewIdentifier("DHA", 7)

		require.NoError(t, err)
		assert.Equal(t, orderid.Identifier("DHA0007"), id)
		assert.False(t, id.IsZero())
	})

	t.Run("width grows past four digits", func(t *testing.T) {
		id, err := orderid.NewIdentifier("DHA", 10000)

		require.NoError(t, err)
		assert.Equal(t, "DHA10000", id.String())
	})

	t.Run("short region prefix", func(t *testing.T) {
		id, err := orderid.NewIdentifier(orderid.ResolveRegionKey("x"), 1)

		require.NoError(t, err)
		assert.Equal(t, "X0001", id.String())
	})

	t.Run("invalid parts are rejected", func(t *testing.T) {
		_, err := orderid.NewIdentifier("", 1)
		require.Error(t, err)

		_, err = orderid.NewIdentifier("DHA", 0)
		require.Error(t, err)
	})
}

func TestParseIdentifier(t *testing.T) {
	id, err := orderid.ParseIdentifier("CHI0042")
	require.NoError(t, err)
	assert.Equal(t, "CHI0042", id.String())

	_, err = orderid.ParseIdentifier("  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = orderid.ParseIdentifier(" CHI0042")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero orderid.Identifier
	assert.True(t, zero.IsZero())
}
