package productrepo_test

import (
	"context"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/productrepo"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(string, ports.EventSource) {}

func newRepository(t *testing.T, capacities records.Capacities) *productrepo.Repository {
	t.Helper()
	ctx := context.Background()
	tx, err := memory.NewStore().Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })
	return productrepo.NewRepository(tx, nopTracker{}, capacities)
}

func newProduct(t *testing.T, code string) *product.Product {
	t.Helper()
	c, _ := kernel.NewCode("code", code)
	institution, _ := kernel.NewCode("institution", "I1")
	name, _ := kernel.NewBoundedID("name", "Tea", kernel.MaxNameLength)
	alice, _ := kernel.NewAccountID("alice")
	p, err := product.NewProduct(c, institution,
		product.Details{Name: name, OriginalPrice: 100, CurrentPrice: 80, Weight: 50}, 10, alice, 1)
	require.NoError(t, err)
	return p
}

func TestRepository_StatusBuckets(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t, records.DefaultCapacities())
	p := newProduct(t, "P1")
	require.NoError(t, repo.Add(ctx, p))

	t.Run("should file a new product as available", func(t *testing.T) {
		members, err := repo.Members(ctx, ports.IndexStatus, "0")
		require.NoError(t, err)
		assert.Equal(t, []string{p.Key()}, members)

		members, err = repo.Members(ctx, ports.IndexInstitution, "I1")
		require.NoError(t, err)
		assert.Equal(t, []string{p.Key()}, members)
	})

	t.Run("should move the product between status buckets", func(t *testing.T) {
		require.NoError(t, p.UpdateStatus(kernel.Unavailable, 2))
		require.NoError(t, repo.Update(ctx, p))

		available, err := repo.Members(ctx, ports.IndexStatus, "0")
		require.NoError(t, err)
		assert.Empty(t, available)
		unavailable, err := repo.Members(ctx, ports.IndexStatus, "1")
		require.NoError(t, err)
		assert.Equal(t, []string{p.Key()}, unavailable)

		got, err := repo.Get(ctx, p.Code(), p.InstitutionCode())
		require.NoError(t, err)
		assert.Equal(t, kernel.Unavailable, got.Status())
		assert.Equal(t, uint64(80), got.Details().CurrentPrice)
	})
}

func TestRepository_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject a duplicate key", func(t *testing.T) {
		repo := newRepository(t, records.DefaultCapacities())
		require.NoError(t, repo.Add(ctx, newProduct(t, "P1")))

		err := repo.Add(ctx, newProduct(t, "P1"))

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject a product when the institution bucket is full", func(t *testing.T) {
		repo := newRepository(t, records.Capacities{Owner: 10, Group: 1, Status: 10})
		require.NoError(t, repo.Add(ctx, newProduct(t, "P1")))

		err := repo.Add(ctx, newProduct(t, "P2"))

		require.ErrorIs(t, err, errs.ErrCapacity)
		_, err = repo.Get(ctx, newProduct(t, "P2").Code(), newProduct(t, "P2").InstitutionCode())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		members, err := repo.Members(ctx, ports.IndexStatus, "0")
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})
}
