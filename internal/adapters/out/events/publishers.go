// Package events provides ports.EventPublisher implementations.
package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

var (
	_ ports.EventPublisher = (*LogPublisher)(nil)
	_ ports.EventPublisher = (*Recorder)(nil)
	_ ports.EventPublisher = Fanout(nil)
)

// LogPublisher writes every event to a structured log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "EventPublisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...kernel.Event) error {
	for _, e := range events {
		attrs := []any{
			"event_id", e.ID.String(),
			"name", e.Name,
			"key", e.Key,
			"at", uint64(e.At),
		}
		for k, v := range e.Attributes {
			attrs = append(attrs, k, v)
		}
		p.logger.InfoContext(ctx, "domain event", attrs...)
	}
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []kernel.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, events ...kernel.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// Events returns everything published so far, oldest first.
func (r *Recorder) Events() []kernel.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Names returns the names of the recorded events, oldest first.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Fanout hands every batch to each publisher in turn and joins their errors.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, events ...kernel.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
