package c2corder_test

import (
	"fmt"
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Codes(t *testing.T) {
	t.Run("should match wire codes", func(t *testing.T) {
		assert.Equal(t, uint8(0), c2corder.Pending.Code())
		assert.Equal(t, uint8(1), c2corder.Paid.Code())
		assert.Equal(t, uint8(2), c2corder.Delivered.Code())
		assert.Equal(t, uint8(3), c2corder.Notarizing.Code())
		assert.Equal(t, uint8(4), c2corder.Cancelled.Code())
		assert.Equal(t, uint8(5), c2corder.Completed.Code())
	})

	t.Run("should decode every known code", func(t *testing.T) {
		for _, s := range c2corder.Statuses() {
			decoded, err := c2corder.StatusFromCode(s.Code())
			require.NoError(t, err)
			assert.Equal(t, s, decoded)
		}
	})

	t.Run("should reject unknown code as state error", func(t *testing.T) {
		_, err := c2corder.StatusFromCode(6)

		require.ErrorIs(t, err, errs.ErrStatusIsInvalid)
		require.ErrorIs(t, err, errs.ErrState)
	})
}

func TestStatus_TransitionClosure(t *testing.T) {
	allowed := map[c2corder.Status][]c2corder.Status{
		c2corder.Pending:    {c2corder.Paid, c2corder.Cancelled, c2corder.Notarizing},
		c2corder.Paid:       {c2corder.Delivered, c2corder.Cancelled, c2corder.Notarizing},
		c2corder.Delivered:  {c2corder.Completed, c2corder.Notarizing},
		c2corder.Notarizing: {c2corder.Completed, c2corder.Cancelled},
	}

	for _, from := range c2corder.Statuses() {
		for _, to := range c2corder.Statuses() {
			expected := false
			for _, a := range allowed[from] {
				if a == to {
					expected = true
				}
			}
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, expected, from.CanTransitionTo(to))
			})
		}
	}

	assert.True(t, c2corder.Cancelled.IsTerminal())
	assert.True(t, c2corder.Completed.IsTerminal())
	assert.False(t, c2corder.Notarizing.IsTerminal())
}

func TestDirectionFromCode(t *testing.T) {
	t.Run("should decode sell and buy", func(t *testing.T) {
		d, err := c2corder.DirectionFromCode(0)
		require.NoError(t, err)
		assert.Equal(t, c2corder.UserSell, d)

		d, err = c2corder.DirectionFromCode(1)
		require.NoError(t, err)
		assert.Equal(t, c2corder.UserBuy, d)
	})

	t.Run("should reject unknown direction as validation error", func(t *testing.T) {
		_, err := c2corder.DirectionFromCode(2)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should default to buy", func(t *testing.T) {
		assert.Equal(t, c2corder.UserBuy, c2corder.DefaultDirection)
	})
}
