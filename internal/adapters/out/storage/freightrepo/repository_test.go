package freightrepo_test

import (
	"context"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/freightrepo"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(string, ports.EventSource) {}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	tx, err := memory.NewStore().Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()
	repo := freightrepo.NewRepository(tx, nopTracker{}, records.DefaultCapacities())

	area, _ := kernel.NewRequiredCode("area", "north")
	alice, _ := kernel.NewAccountID("alice")
	tpl, err := freight.NewTemplate(area, freight.Fees{FirstWeight: 1000, FirstWeightFee: 10, AdditionalWeightFee: 2}, alice, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, tpl))

	t.Run("should read the template back", func(t *testing.T) {
		got, err := repo.Get(ctx, area)

		require.NoError(t, err)
		assert.Equal(t, tpl.Fees(), got.Fees())
		assert.Equal(t, uint32(20), got.Quote(1005))
	})

	t.Run("should file the template under its creator", func(t *testing.T) {
		members, err := repo.Members(ctx, ports.IndexCreator, "alice")

		require.NoError(t, err)
		assert.Equal(t, []string{"north"}, members)
	})

	t.Run("should forget the template on remove", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, tpl))

		_, err := repo.Get(ctx, area)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		members, err := repo.Members(ctx, ports.IndexCreator, "alice")
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
