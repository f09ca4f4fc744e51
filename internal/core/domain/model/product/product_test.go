package product_test

import (
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(t *testing.T, raw string) kernel.BoundedID {
	t.Helper()
	id, err := kernel.NewCode("code", raw)
	require.NoError(t, err)
	return id
}

func account(t *testing.T, raw string) kernel.AccountID {
	t.Helper()
	a, err := kernel.NewAccountID(raw)
	require.NoError(t, err)
	return a
}

func newProduct(t *testing.T, stock uint64) *product.Product {
	t.Helper()
	p, err := product.NewProduct(code(t, "P1"), code(t, "I1"), product.Details{
		Name:          code(t, "Tea"),
		OriginalPrice: 100,
		CurrentPrice:  80,
		ProfitRatio:   50_000_000,
	}, stock, account(t, "alice"), 1)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("should reject current price above original", func(t *testing.T) {
		_, err := product.NewProduct(code(t, "P1"), code(t, "I1"), product.Details{
			OriginalPrice: 10,
			CurrentPrice:  11,
		}, 0, account(t, "alice"), 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject profit ratio above one", func(t *testing.T) {
		_, err := product.NewProduct(code(t, "P1"), code(t, "I1"), product.Details{
			ProfitRatio: product.PartsPerBillion + 1,
		}, 0, account(t, "alice"), 1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject too many detail images", func(t *testing.T) {
		images := make([]kernel.BoundedID, product.MaxDetailImages+1)

		_, err := product.NewProduct(code(t, "P1"), code(t, "I1"), product.Details{
			DetailImages: images,
		}, 0, account(t, "alice"), 1)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestProduct_UpdateDetails(t *testing.T) {
	t.Run("should check price rule on merged details", func(t *testing.T) {
		p := newProduct(t, 1)
		lower := uint64(50)

		err := p.UpdateDetails(product.DetailsUpdate{OriginalPrice: &lower}, 2)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, uint64(100), p.Details().OriginalPrice)
		assert.Empty(t, p.DomainEvents())
	})

	t.Run("should apply present fields", func(t *testing.T) {
		p := newProduct(t, 1)
		price := uint64(60)
		brand := code(t, "Leaf")

		require.NoError(t, p.UpdateDetails(product.DetailsUpdate{CurrentPrice: &price, Brand: &brand}, 2))

		assert.Equal(t, uint64(60), p.Details().CurrentPrice)
		assert.Equal(t, "Leaf", p.Details().Brand.String())
		assert.Equal(t, "Tea", p.Details().Name.String())
	})
}

func TestProduct_Purchase(t *testing.T) {
	bob := account(t, "bob")

	t.Run("should move stock into sales", func(t *testing.T) {
		p := newProduct(t, 5)

		require.NoError(t, p.Purchase(bob, 2, 3))

		assert.Equal(t, uint64(3), p.Stock())
		assert.Equal(t, uint64(2), p.Sales())
	})

	t.Run("should refuse a zero quantity", func(t *testing.T) {
		p := newProduct(t, 5)

		require.ErrorIs(t, p.Purchase(bob, 0, 3), errs.ErrValueIsInvalid)
		assert.Equal(t, uint64(0), p.Sales())
	})

	t.Run("should refuse insufficient stock", func(t *testing.T) {
		p := newProduct(t, 1)

		require.ErrorIs(t, p.Purchase(bob, 2, 3), errs.ErrValidation)
	})

	t.Run("should refuse unavailable product", func(t *testing.T) {
		p := newProduct(t, 5)
		require.NoError(t, p.UpdateStatus(kernel.Unavailable, 2))

		require.ErrorIs(t, p.Purchase(bob, 1, 3), errs.ErrState)
	})

	t.Run("should accept repeating the current status", func(t *testing.T) {
		p := newProduct(t, 5)

		require.NoError(t, p.UpdateStatus(kernel.Available, 4))

		assert.Equal(t, kernel.Available, p.Status())
		assert.Equal(t, kernel.Timestamp(4), p.UpdatedAt())
	})
}
