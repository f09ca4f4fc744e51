package productrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.ProductRepository = (*Repository)(nil)

type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	collection records.Collection[ProductDTO]
}

func NewRepository(tx records.Tx, tracker ports.AggregateTracker, capacities records.Capacities) *Repository {
	return &Repository{
		tx:      tx,
		tracker: tracker,
		collection: records.Collection[ProductDTO]{
			Table: records.NewTable[ProductDTO](Kind),
			Key:   ProductDTO.key,
			Families: []records.Family[ProductDTO]{
				{
					Index:  records.NewIndex(Kind, ports.IndexInstitution, capacities.Group),
					Bucket: func(dto ProductDTO) string { return string(dto.InstitutionCode) },
				},
				{
					Index:     records.NewIndex(Kind, ports.IndexStatus, capacities.Status),
					Bucket:    statusBucket,
					Exclusive: true,
				},
			},
		},
	}
}

func (r *Repository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

func (r *Repository) Remove(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.Delete(ctx, r.tx, aggregate.Key()); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

func (r *Repository) Get(ctx context.Context, code, institutionCode kernel.BoundedID) (*product.Product, error) {
	dto, err := r.collection.Get(ctx, r.tx, product.Key(code, institutionCode))
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
