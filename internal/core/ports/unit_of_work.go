package ports

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory hands out one UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans one backend transaction. Every write a command makes goes
// through the repositories it hands out, so the command commits or leaves no
// trace.
type UnitOfWork interface {
	// Begin starts a new backend transaction.
	Begin(ctx context.Context) error

	// Commit makes the writes durable, then publishes the events of every
	// tracked aggregate. It fails outside Begin.
	Commit(ctx context.Context) error

	// Rollback discards the writes and the tracked aggregates.
	Rollback(ctx context.Context) error

	// Repositories are bound to the transaction started by Begin().
	C2COrderRepository() C2COrderRepository
	OrderRepository() OrderRepository
	TokenRepository() TokenRepository
	InstitutionRepository() InstitutionRepository
	ProductRepository() ProductRepository
	FreightTemplateRepository() FreightTemplateRepository
	PaymentMethodRepository() PaymentMethodRepository
}

// EventSource is an aggregate that collects domain events.
type EventSource interface {
	DomainEvents() []kernel.Event
	ClearDomainEvents()
}

// AggregateTracker collects aggregates written during a unit of work.
type AggregateTracker interface {
	TrackAggregate(key string, aggregate EventSource)
}
