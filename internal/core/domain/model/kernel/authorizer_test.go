package kernel_test

import (
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

type ownedRecord struct{ creator kernel.AccountID }

func (r ownedRecord) Creator() kernel.AccountID { return r.creator }

func account(t *testing.T, raw string) kernel.AccountID {
	t.Helper()
	a, err := kernel.NewAccountID(raw)
	require.NoError(t, err)
	return a
}

func TestCreatorOnly(t *testing.T) {
	alice := account(t, "alice")
	bob := account(t, "bob")
	record := ownedRecord{creator: alice}

	t.Run("should allow creator", func(t *testing.T) {
		require.NoError(t, kernel.CreatorOnly().Authorize(alice, "delete", record))
	})

	t.Run("should deny anyone else", func(t *testing.T) {
		err := kernel.CreatorOnly().Authorize(bob, "delete", record)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestAnyOf(t *testing.T) {
	alice := account(t, "alice")
	operator := account(t, "operator")
	mallory := account(t, "mallory")
	record := ownedRecord{creator: alice}
	authorizer := kernel.AnyOf(kernel.CreatorOnly(), kernel.Accounts(operator))

	t.Run("should allow creator and operator", func(t *testing.T) {
		require.NoError(t, authorizer.Authorize(alice, "cancel", record))
		require.NoError(t, authorizer.Authorize(operator, "cancel", record))
	})

	t.Run("should deny others", func(t *testing.T) {
		require.ErrorIs(t, authorizer.Authorize(mallory, "cancel", record), errs.ErrNotAuthorized)
	})

	t.Run("should deny everything when empty", func(t *testing.T) {
		require.Error(t, kernel.AnyOf().Authorize(alice, "cancel", record))
	})
}
