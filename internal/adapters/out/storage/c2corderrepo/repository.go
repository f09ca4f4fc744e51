package c2corderrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.C2COrderRepository = (*Repository)(nil)

// Repository implements ports.C2COrderRepository on a records.Tx.
type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	collection records.Collection[OrderDTO]
}

func NewRepository(tx records.Tx, tracker ports.AggregateTracker, capacities records.Capacities) *Repository {
	return &Repository{
		tx:      tx,
		tracker: tracker,
		collection: records.Collection[OrderDTO]{
			Table: records.NewTable[OrderDTO](Kind),
			Key:   func(dto OrderDTO) string { return string(dto.Code) },
			Families: []records.Family[OrderDTO]{
				{
					Index:  records.NewIndex(Kind, ports.IndexMember, capacities.Owner),
					Bucket: func(dto OrderDTO) string { return string(dto.MemberCode) },
				},
				{
					Index:  records.NewIndex(Kind, ports.IndexInstitution, capacities.Group),
					Bucket: func(dto OrderDTO) string { return string(dto.InstitutionCode) },
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

func (r *Repository) Add(ctx context.Context, aggregate *c2corder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *c2corder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

func (r *Repository) Remove(ctx context.Context, aggregate *c2corder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.Delete(ctx, r.tx, aggregate.Code().String()); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

// Get retrieves an order by code.
func (r *Repository) Get(ctx context.Context, code kernel.BoundedID) (*c2corder.Order, error) {
	dto, err := r.collection.Get(ctx, r.tx, code.String())
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
