package ports

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events after the unit of work that raised
// them committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.Event) error
}
