package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should accept open and closed", func(t *testing.T) {
		s, err := order.ParseStatus("open")
		require.NoError(t, err)
		assert.Equal(t, order.Open, s)

		s, err = order.ParseStatus("closed")
		require.NoError(t, err)
		assert.Equal(t, order.Closed, s)
	})

	for _, raw := range []string{"", "shipped", "OPEN", " open", "Closed"} {
		t.Run("should reject "+raw, func(t *testing.T) {
			s, err := order.ParseStatus(raw)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.True(t, errs.IsInvalidArgument(err))
			assert.Empty(t, s)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "open", order.Open.String())
	assert.Equal(t, "closed", order.Closed.String())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("open to closed", func(t *testing.T) {
		next, err := order.Open.TransitionTo(order.Closed)

		require.NoError(t, err)
		assert.Equal(t, order.Closed, next)
	})

	t.Run("same state is a no-op", func(t *testing.T) {
		next, err := order.Open.TransitionTo(order.Open)
		require.NoError(t, err)
		assert.Equal(t, order.Open, next)

		next, err = order.Closed.TransitionTo(order.Closed)
		require.NoError(t, err)
		assert.Equal(t, order.Closed, next)
	})

	t.Run("closed cannot be reopened", func(t *testing.T) {
		_, err := order.Closed.TransitionTo(order.Open)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("unknown target is invalid argument", func(t *testing.T) {
		_, err := order.Open.TransitionTo(order.Status("shipped"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_ValidateAcceptLineItems(t *testing.T) {
	require.NoError(t, order.Open.ValidateAcceptLineItems())

	err := order.Closed.ValidateAcceptLineItems()
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Contains(t, err.Error(), "cannot add products to a closed order")
}
