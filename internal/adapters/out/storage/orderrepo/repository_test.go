package orderrepo_test

import (
	"context"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/orderrepo"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(string, ports.EventSource) {}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tx, err := memory.NewStore().Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	repo := orderrepo.NewRepository(tx, nopTracker{}, records.DefaultCapacities())

	code, _ := kernel.NewCode("code", "O1")
	member, _ := kernel.NewCode("member", "M1")
	institution, _ := kernel.NewCode("institution", "I1")
	product, _ := kernel.NewCode("product", "P1")
	alice, _ := kernel.NewAccountID("alice")
	item, err := order.NewItem(product, 2, 500, 30)
	require.NoError(t, err)
	contact, err := order.NewContact("555", "a@b.c", "Main St 1")
	require.NoError(t, err)
	o, err := order.NewOrder(code, member, institution, []order.Item{item}, 100, contact, alice, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, o))

	company, _ := kernel.NewCode("company", "SF")
	number, _ := kernel.NewCode("number", "SF123")
	require.NoError(t, o.UpdateExpressInfo(company, number, 2))
	require.NoError(t, o.UpdateStatus(order.Paid, 3))
	require.NoError(t, repo.Update(ctx, o))

	got, err := repo.Get(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, uint32(1100), got.TotalAmount())
	assert.Equal(t, uint32(60), got.TotalWeight())
	assert.Equal(t, "Main St 1", got.Contact().Address().String())
	assert.Equal(t, "SF123", got.ExpressNumber().String())
	assert.Equal(t, order.Paid, got.Status())

	paid, err := repo.Members(ctx, ports.IndexStatus, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"O1"}, paid)
}
