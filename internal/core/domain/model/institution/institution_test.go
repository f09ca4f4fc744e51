package institution_test

import (
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(t *testing.T, raw string) kernel.BoundedID {
	t.Helper()
	id, err := kernel.NewBoundedID("text", raw, kernel.MaxTextLength)
	require.NoError(t, err)
	return id
}

func newInstitution(t *testing.T) *institution.Institution {
	t.Helper()
	creator, err := kernel.NewAccountID("alice")
	require.NoError(t, err)
	i, err := institution.NewInstitution(text(t, "I1"), institution.Info{
		Name:     text(t, "Acme"),
		FullName: text(t, "Acme Trading Ltd"),
	}, creator, 1)
	require.NoError(t, err)
	return i
}

func TestNewInstitution(t *testing.T) {
	i := newInstitution(t)

	assert.Equal(t, institution.NotCertified, i.Status())
	assert.Nil(t, i.Info().ProfitContract)
	require.Len(t, i.DomainEvents(), 1)
}

func TestInstitution_UpdateStatus(t *testing.T) {
	t.Run("should certify and deactivate", func(t *testing.T) {
		i := newInstitution(t)

		require.NoError(t, i.UpdateStatus(institution.Certified, 2))
		require.NoError(t, i.UpdateStatus(institution.Deactivated, 3))

		assert.Equal(t, institution.Deactivated, i.Status())
	})

	t.Run("should keep deactivated terminal", func(t *testing.T) {
		i := newInstitution(t)
		require.NoError(t, i.UpdateStatus(institution.Deactivated, 2))

		require.ErrorIs(t, i.UpdateStatus(institution.Certified, 3), errs.ErrTransitionIsInvalid)
	})

	t.Run("should reject unknown code", func(t *testing.T) {
		_, err := institution.StatusFromCode(3)

		require.ErrorIs(t, err, errs.ErrStatusIsInvalid)
	})
}

func TestInstitution_UpdateInfo(t *testing.T) {
	i := newInstitution(t)
	contract := text(t, "contract-v2")
	scope := text(t, "wholesale")

	i.UpdateInfo(institution.InfoUpdate{ProfitContract: &contract, BusinessScope: &scope}, 5)

	info := i.Info()
	assert.Equal(t, "Acme", info.Name.String())
	assert.Equal(t, "wholesale", info.BusinessScope.String())
	require.NotNil(t, info.ProfitContract)
	assert.Equal(t, "contract-v2", info.ProfitContract.String())
	assert.Equal(t, kernel.Timestamp(5), i.UpdatedAt())
}
