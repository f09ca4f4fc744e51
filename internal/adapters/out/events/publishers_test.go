package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/events"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failing struct{}

func (failing) Publish(context.Context, ...kernel.Event) error { return errors.New("down") }

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	publisher := events.NewLogPublisher(logger)

	err := publisher.Publish(context.Background(), kernel.NewEvent("c2c_order.created", "O1", 3, "creator", "alice"))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "name=c2c_order.created")
	assert.Contains(t, buf.String(), "key=O1")
	assert.Contains(t, buf.String(), "creator=alice")
}

func TestFanout_Publish(t *testing.T) {
	t.Run("should deliver to every publisher", func(t *testing.T) {
		first, second := events.NewRecorder(), events.NewRecorder()

		err := events.Fanout{first, second}.Publish(context.Background(), kernel.NewEvent("x", "k", 1))

		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, first.Names())
		assert.Equal(t, []string{"x"}, second.Names())
	})

	t.Run("should keep going after a failure", func(t *testing.T) {
		recorder := events.NewRecorder()

		err := events.Fanout{failing{}, recorder}.Publish(context.Background(), kernel.NewEvent("x", "k", 1))

		require.Error(t, err)
		assert.Len(t, recorder.Events(), 1)
	})
}
