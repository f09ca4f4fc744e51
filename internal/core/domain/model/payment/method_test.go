package payment_test

import (
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, raw string) *kernel.BoundedID {
	t.Helper()
	id, err := kernel.NewBoundedID("handle", raw, kernel.MaxPaymentLength)
	require.NoError(t, err)
	return &id
}

func newMethod(t *testing.T) *payment.Method {
	t.Helper()
	institution, err := kernel.NewCode("institution", "I1")
	require.NoError(t, err)
	creator, err := kernel.NewAccountID("alice")
	require.NoError(t, err)
	m, err := payment.NewMethod(institution, payment.Channels{WeChat: handle(t, "wx-1")}, creator, 1)
	require.NoError(t, err)
	m.ClearDomainEvents()
	return m
}

func TestNewMethod(t *testing.T) {
	institution, _ := kernel.NewCode("institution", "I1")
	creator, _ := kernel.NewAccountID("alice")

	_, err := payment.NewMethod(institution, payment.Channels{}, creator, 1)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestMethod_SetField(t *testing.T) {
	t.Run("should set another channel", func(t *testing.T) {
		m := newMethod(t)

		require.NoError(t, m.SetField(payment.Alipay, handle(t, "ali-1"), 2))

		require.NotNil(t, m.Channels().Alipay)
		assert.Equal(t, "ali-1", m.Channels().Alipay.String())
		assert.Len(t, m.DomainEvents(), 1)
	})

	t.Run("should refuse clearing the last channel", func(t *testing.T) {
		m := newMethod(t)

		err := m.SetField(payment.WeChat, nil, 2)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.NotNil(t, m.Channels().WeChat)
	})

	t.Run("should reject unknown field code", func(t *testing.T) {
		_, err := payment.FieldFromCode(4)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
