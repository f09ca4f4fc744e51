package guard_test

import (
	"errors"
	"testing"

	"github.com/lao-sha/fissionmall/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("should pass when constructed", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return the given error for a zero value", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		assert.Equal(t, expected, err)
	})

	t.Run("should fall back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	type transfer struct {
		amount uint64
		guard  guard.ConstructorGuard
	}
	errNotConstructed := errors.New("transfer must be created via newTransfer")
	newTransfer := func(amount uint64) (transfer, error) {
		if amount == 0 {
			return transfer{}, errors.New("amount must be positive")
		}
		return transfer{amount: amount, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should accept constructor output", func(t *testing.T) {
		tr, err := newTransfer(10)
		require.NoError(t, err)
		require.NoError(t, tr.guard.Validate(errNotConstructed))
	})

	t.Run("should reject literal", func(t *testing.T) {
		tr := transfer{amount: 10}
		require.ErrorIs(t, tr.guard.Validate(errNotConstructed), errNotConstructed)
	})
}
