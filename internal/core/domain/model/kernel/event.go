package kernel

import (
	"fmt"
	"maps"

	"github.com/google/uuid"
)

// EventID uniquely identifies a published domain event.
type EventID struct {
	id uuid.UUID
}

func NewEventID() EventID {
	return EventID{id: uuid.New()}
}

func EventIDFromString(s string) (EventID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EventID{}, fmt.Errorf("invalid event id: %w", err)
	}
	return EventID{id: id}, nil
}

func (e EventID) String() string {
	return e.id.String()
}

func (e EventID) IsZero() bool {
	return e.id == uuid.Nil
}

// Event is a notification raised by an accepted command. Name is
// "<kind>.<what happened>", Key is the primary key of the record.
type Event struct {
	ID         EventID
	Name       string
	Key        string
	At         Timestamp
	Attributes map[string]string
}

// NewEvent builds an event from alternating attribute keys and values, the way
// slog takes them. A trailing key without a value is dropped.
func NewEvent(name, key string, at Timestamp, attrs ...string) Event {
	attributes := make(map[string]string, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		attributes[attrs[i]] = attrs[i+1]
	}
	return Event{
		ID:         NewEventID(),
		Name:       name,
		Key:        key,
		At:         at,
		Attributes: attributes,
	}
}

// Attribute returns the named attribute or "".
func (e Event) Attribute(name string) string {
	return e.Attributes[name]
}

// AggregateRoot collects the events an aggregate raises until the unit of work
// that persisted it commits.
type AggregateRoot struct {
	events []Event
}

func (a *AggregateRoot) RaiseDomainEvent(event Event) {
	a.events = append(a.events, event)
}

func (a *AggregateRoot) DomainEvents() []Event {
	out := make([]Event, len(a.events))
	for i, e := range a.events {
		out[i] = e
		out[i].Attributes = maps.Clone(e.Attributes)
	}
	return out
}

func (a *AggregateRoot) ClearDomainEvents() {
	a.events = nil
}
