package freight_test

import (
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(t *testing.T) *freight.Template {
	t.Helper()
	area, err := kernel.NewCode("area", "east")
	require.NoError(t, err)
	creator, err := kernel.NewAccountID("alice")
	require.NoError(t, err)
	tpl, err := freight.NewTemplate(area, freight.Fees{FirstWeight: 1000, FirstWeightFee: 8, AdditionalWeightFee: 2}, creator, 1)
	require.NoError(t, err)
	return tpl
}

func TestNewTemplate(t *testing.T) {
	t.Run("should raise created", func(t *testing.T) {
		tpl := newTemplate(t)

		require.Len(t, tpl.DomainEvents(), 1)
		assert.Equal(t, freight.EventCreated, tpl.DomainEvents()[0].Name)
	})

	t.Run("should require area", func(t *testing.T) {
		creator, _ := kernel.NewAccountID("alice")

		_, err := freight.NewTemplate(kernel.BoundedID{}, freight.Fees{}, creator, 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestTemplate_Quote(t *testing.T) {
	tpl := newTemplate(t)

	assert.Equal(t, uint32(8), tpl.Quote(500))
	assert.Equal(t, uint32(8), tpl.Quote(1000))
	assert.Equal(t, uint32(12), tpl.Quote(1002))
}

func TestTemplate_Update(t *testing.T) {
	tpl := newTemplate(t)
	fee := uint32(10)

	tpl.Update(freight.FeesUpdate{FirstWeightFee: &fee}, 4)

	assert.Equal(t, uint32(10), tpl.Fees().FirstWeightFee)
	assert.Equal(t, uint32(1000), tpl.Fees().FirstWeight)
	assert.Equal(t, kernel.Timestamp(4), tpl.UpdatedAt())
}
