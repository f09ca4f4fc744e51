// Package storage implements the Unit of Work over any records.Backend.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes.
//
// Usage:
//
//	factory := NewUnitOfWorkFactory(backend, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.C2COrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Events raised by tracked aggregates are published only after the backend
// transaction committed. A rolled back unit of work publishes nothing.
package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/c2corderrepo"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/freightrepo"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/institutionrepo"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/orderrepo"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/paymentrepo"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/productrepo"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage/tokenrepo"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

// ErrNoTransaction is returned when the unit of work is used outside Begin and
// Commit or Rollback.
var ErrNoTransaction = errors.New("unit of work has no active transaction")

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	Key       string
	Aggregate ports.EventSource
}

// Option configures a UnitOfWorkFactory.
type Option func(*UnitOfWorkFactory)

// WithCapacities overrides the index bucket limits.
func WithCapacities(capacities records.Capacities) Option {
	return func(f *UnitOfWorkFactory) {
		f.capacities = capacities
	}
}

// UnitOfWorkFactory creates UnitOfWork instances on one backend.
type UnitOfWorkFactory struct {
	backend    records.Backend
	publisher  ports.EventPublisher
	logger     *slog.Logger
	capacities records.Capacities
}

func NewUnitOfWorkFactory(
	backend records.Backend,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	opts ...Option,
) *UnitOfWorkFactory {
	f := &UnitOfWorkFactory{
		backend:    backend,
		publisher:  publisher,
		logger:     logger.With("component", "UnitOfWork"),
		capacities: records.DefaultCapacities(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create()
}

func (f *UnitOfWorkFactory) create() *UnitOfWork {
	return &UnitOfWork{
		backend:           f.backend,
		publisher:         f.publisher,
		logger:            f.logger,
		capacities:        f.capacities,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// UnitOfWork coordinates one backend transaction and the aggregates written in
// it. It implements records.Tx by delegating to the open transaction, which is
// how the repositories it hands out share that transaction.
type UnitOfWork struct {
	backend           records.Backend
	publisher         ports.EventPublisher
	logger            *slog.Logger
	capacities        records.Capacities
	tx                records.Transaction
	trackedAggregates []trackedAggregate
}

// Begin opens a backend transaction. Calling Begin again before Commit or
// Rollback is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx, err := uow.backend.Begin(ctx)
	if err != nil {
		return err
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction and then publishes the events collected
// from tracked aggregates. A publishing failure is logged; the data is
// already committed at that point.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Commit(ctx)
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = nil
		return err
	}

	events := uow.collectEvents()
	if len(events) == 0 || uow.publisher == nil {
		return nil
	}
	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish domain events",
			"count", len(events),
			"error", err)
	}
	return nil
}

// Rollback discards the transaction and every tracked aggregate.
func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Rollback(ctx)
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

// TrackAggregate registers an aggregate whose events are published on commit.
// Tracking the same aggregate twice keeps the first registration.
func (uow *UnitOfWork) TrackAggregate(key string, aggregate ports.EventSource) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Key:       key,
		Aggregate: aggregate,
	})
}

func (uow *UnitOfWork) collectEvents() []kernel.Event {
	var events []kernel.Event
	for _, tracked := range uow.trackedAggregates {
		events = append(events, tracked.Aggregate.DomainEvents()...)
		tracked.Aggregate.ClearDomainEvents()
	}
	uow.trackedAggregates = nil
	return events
}

func (uow *UnitOfWork) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if uow.tx == nil {
		return nil, ErrNoTransaction
	}
	return uow.tx.Get(ctx, namespace, key)
}

func (uow *UnitOfWork) Put(ctx context.Context, namespace, key string, value []byte) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	return uow.tx.Put(ctx, namespace, key, value)
}

func (uow *UnitOfWork) Delete(ctx context.Context, namespace, key string) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	return uow.tx.Delete(ctx, namespace, key)
}

func (uow *UnitOfWork) Keys(ctx context.Context, namespace string) ([]string, error) {
	if uow.tx == nil {
		return nil, ErrNoTransaction
	}
	return uow.tx.Keys(ctx, namespace)
}

func (uow *UnitOfWork) C2COrderRepository() ports.C2COrderRepository {
	return c2corderrepo.NewRepository(uow, uow, uow.capacities)
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewRepository(uow, uow, uow.capacities)
}

func (uow *UnitOfWork) TokenRepository() ports.TokenRepository {
	return tokenrepo.NewRepository(uow, uow, uow.capacities)
}

func (uow *UnitOfWork) InstitutionRepository() ports.InstitutionRepository {
	return institutionrepo.NewRepository(uow, uow, uow.capacities)
}

func (uow *UnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewRepository(uow, uow, uow.capacities)
}

func (uow *UnitOfWork) FreightTemplateRepository() ports.FreightTemplateRepository {
	return freightrepo.NewRepository(uow, uow, uow.capacities)
}

func (uow *UnitOfWork) PaymentMethodRepository() ports.PaymentMethodRepository {
	return paymentrepo.NewRepository(uow, uow, uow.capacities)
}
