package paymentrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.PaymentMethodRepository = (*Repository)(nil)

type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	collection records.Collection[MethodDTO]
}

func NewRepository(tx records.Tx, tracker ports.AggregateTracker, capacities records.Capacities) *Repository {
	return &Repository{
		tx:      tx,
		tracker: tracker,
		collection: records.Collection[MethodDTO]{
			Table: records.NewTable[MethodDTO](Kind),
			Key:   func(dto MethodDTO) string { return string(dto.InstitutionID) },
			Families: []records.Family[MethodDTO]{
				{
					Index:  records.NewIndex(Kind, ports.IndexCreator, capacities.Owner),
					Bucket: func(dto MethodDTO) string { return string(dto.Creator) },
				},
			},
		},
	}
}

func (r *Repository) Add(ctx context.Context, aggregate *payment.Method) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.InstitutionID().String(), aggregate)
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *payment.Method) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.InstitutionID().String(), aggregate)
	return nil
}

func (r *Repository) Remove(ctx context.Context, aggregate *payment.Method) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.Delete(ctx, r.tx, aggregate.InstitutionID().String()); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.InstitutionID().String(), aggregate)
	return nil
}

func (r *Repository) Get(ctx context.Context, institutionID kernel.BoundedID) (*payment.Method, error) {
	dto, err := r.collection.Get(ctx, r.tx, institutionID.String())
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func (r *Repository) Members(ctx context.Context, family, bucket string) ([]string, error) {
	return r.collection.Members(ctx, r.tx, family, bucket)
}

func (r *Repository) Snapshot(ctx context.Context) (records.Snapshot, error) {
	return r.collection.Snapshot(ctx, r.tx)
}
