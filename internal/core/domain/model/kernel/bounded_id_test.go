package kernel_test

import (
	"strings"
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundedID(t *testing.T) {
	t.Run("should accept identifier at the limit", func(t *testing.T) {
		raw := strings.Repeat("a", 8)

		id, err := kernel.NewBoundedID("code", raw, 8)

		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
		assert.Equal(t, 8, id.Len())
	})

	t.Run("should reject identifier over the limit", func(t *testing.T) {
		_, err := kernel.NewBoundedID("code", strings.Repeat("a", 9), 8)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should allow empty identifier", func(t *testing.T) {
		id, err := kernel.NewBoundedID("code", "", 8)

		require.NoError(t, err)
		assert.True(t, id.IsEmpty())
	})

	t.Run("should compare by bytes without folding", func(t *testing.T) {
		a, _ := kernel.NewCode("code", "O1")
		b, _ := kernel.NewCode("code", "O1")
		c, _ := kernel.NewCode("code", "o1")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
		assert.Equal(t, a, b)

		m := map[kernel.BoundedID]int{a: 1}
		assert.Equal(t, 1, m[b])
	})

	t.Run("should count bytes not runes", func(t *testing.T) {
		_, err := kernel.NewBoundedID("name", "ééé", 5)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewRequiredCode(t *testing.T) {
	t.Run("should reject empty code", func(t *testing.T) {
		_, err := kernel.NewRequiredCode("order code", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject code longer than MaxCodeLength", func(t *testing.T) {
		_, err := kernel.NewRequiredCode("order code", strings.Repeat("x", kernel.MaxCodeLength+1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewOptionalText(t *testing.T) {
	t.Run("should pass nil through", func(t *testing.T) {
		v, err := kernel.NewOptionalText("phone", nil, kernel.MaxPhoneLength)

		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("should bound present value", func(t *testing.T) {
		long := strings.Repeat("1", kernel.MaxPhoneLength+1)

		_, err := kernel.NewOptionalText("phone", &long, kernel.MaxPhoneLength)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestNewAccountID(t *testing.T) {
	t.Run("should reject empty account", func(t *testing.T) {
		_, err := kernel.NewAccountID("")

		require.ErrorIs(t, err, kernel.ErrAccountIDIsNotConstructed)
	})

	t.Run("should report zero value", func(t *testing.T) {
		var a kernel.AccountID
		b, err := kernel.NewAccountID("alice")

		require.NoError(t, err)
		assert.True(t, a.IsZero())
		assert.False(t, b.IsZero())
		require.Error(t, a.Validate())
	})
}

func TestTimestamp_Max(t *testing.T) {
	assert.Equal(t, kernel.Timestamp(7), kernel.Timestamp(3).Max(7))
	assert.Equal(t, kernel.Timestamp(7), kernel.Timestamp(7).Max(3))
}

func TestCompositeKey(t *testing.T) {
	a, _ := kernel.NewCode("code", "ab")
	b, _ := kernel.NewCode("code", "c")
	c, _ := kernel.NewCode("code", "a")
	d, _ := kernel.NewCode("code", "bc")

	assert.Equal(t, "2:ab1:c", kernel.CompositeKey(a, b))
	assert.NotEqual(t, kernel.CompositeKey(a, b), kernel.CompositeKey(c, d))
}
