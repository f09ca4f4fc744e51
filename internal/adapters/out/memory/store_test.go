package memory_test

import (
	"context"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Transaction(t *testing.T) {
	ctx := context.Background()

	t.Run("should publish writes on commit", func(t *testing.T) {
		store := memory.NewStore()

		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Put(ctx, "ns", "b", []byte("2")))
		require.NoError(t, tx.Put(ctx, "ns", "a", []byte("1")))
		require.NoError(t, tx.Commit(ctx))

		tx, err = store.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		value, err := tx.Get(ctx, "ns", "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), value)

		keys, err := tx.Keys(ctx, "ns")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keys)
	})

	t.Run("should discard writes on rollback", func(t *testing.T) {
		store := memory.NewStore()

		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Put(ctx, "ns", "a", []byte("1")))
		require.NoError(t, tx.Rollback(ctx))

		tx, err = store.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		_, err = tx.Get(ctx, "ns", "a")
		require.ErrorIs(t, err, records.ErrKeyNotFound)
	})

	t.Run("should hide staged deletes from reads", func(t *testing.T) {
		store := memory.NewStore()
		tx, _ := store.Begin(ctx)
		require.NoError(t, tx.Put(ctx, "ns", "a", []byte("1")))
		require.NoError(t, tx.Commit(ctx))

		tx, _ = store.Begin(ctx)
		defer tx.Rollback(ctx)
		require.NoError(t, tx.Delete(ctx, "ns", "a"))

		_, err := tx.Get(ctx, "ns", "a")
		require.ErrorIs(t, err, records.ErrKeyNotFound)
		keys, err := tx.Keys(ctx, "ns")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("should reject use after close", func(t *testing.T) {
		store := memory.NewStore()
		tx, _ := store.Begin(ctx)
		require.NoError(t, tx.Commit(ctx))

		require.ErrorIs(t, tx.Put(ctx, "ns", "a", nil), memory.ErrTxClosed)
		require.ErrorIs(t, tx.Rollback(ctx), memory.ErrTxClosed)
	})
}

func TestClock_Now(t *testing.T) {
	clock := memory.NewClock(10)

	assert.EqualValues(t, 11, clock.Now())
	assert.EqualValues(t, 12, clock.Now())
}
