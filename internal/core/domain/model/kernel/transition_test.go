package kernel_test

import (
	"testing"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type light string

func (l light) String() string { return string(l) }

const (
	red    light = "red"
	green  light = "green"
	yellow light = "yellow"
	off    light = "off"
)

func newLightTable() kernel.TransitionTable[light] {
	return kernel.NewTransitionTable(map[light][]light{
		red:    {green, off},
		green:  {yellow, off},
		yellow: {red, off},
	})
}

func TestTransitionTable_Validate(t *testing.T) {
	table := newLightTable()

	t.Run("should allow listed edges", func(t *testing.T) {
		require.NoError(t, table.Validate(red, green))
		require.NoError(t, table.Validate(yellow, off))
	})

	t.Run("should reject unlisted edges as state errors", func(t *testing.T) {
		err := table.Validate(red, yellow)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		require.ErrorIs(t, err, errs.ErrState)
		assert.Contains(t, err.Error(), "red -> yellow")
	})

	t.Run("should reject self transition unless listed", func(t *testing.T) {
		require.Error(t, table.Validate(green, green))
	})

	t.Run("should treat states without edges as terminal", func(t *testing.T) {
		assert.True(t, table.IsTerminal(off))
		assert.False(t, table.IsTerminal(red))
		require.Error(t, table.Validate(off, red))
	})
}

func TestTransitionTable_IsolatedFromInput(t *testing.T) {
	edges := map[light][]light{red: {green}}
	table := kernel.NewTransitionTable(edges)

	edges[red][0] = yellow
	edges[green] = []light{red}

	assert.True(t, table.Allows(red, green))
	assert.False(t, table.Allows(green, red))
	assert.Equal(t, []light{green}, table.Targets(red))
}

func TestAvailability(t *testing.T) {
	t.Run("should decode wire codes", func(t *testing.T) {
		a, err := kernel.AvailabilityFromCode(0)
		require.NoError(t, err)
		assert.Equal(t, kernel.Available, a)

		u, err := kernel.AvailabilityFromCode(1)
		require.NoError(t, err)
		assert.Equal(t, kernel.Unavailable, u)
	})

	t.Run("should reject unknown code", func(t *testing.T) {
		_, err := kernel.AvailabilityFromCode(2)

		require.ErrorIs(t, err, errs.ErrStatusIsInvalid)
	})

	t.Run("should allow every edge including self", func(t *testing.T) {
		for _, from := range []kernel.Availability{kernel.Available, kernel.Unavailable} {
			for _, to := range []kernel.Availability{kernel.Available, kernel.Unavailable} {
				next, err := from.Transition(to)
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, next)
			}
		}
	})
}
