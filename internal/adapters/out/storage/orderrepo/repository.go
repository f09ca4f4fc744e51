package orderrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository implements ports.OrderRepository on a records.Tx.
type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	collection records.Collection[OrderDTO]
}

// NewRepository creates an order repository bound to tx.
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

// Add saves a new order.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

// Update saves an existing order.
func (r *Repository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

// Remove deletes an order with its index entries.
func (r *Repository) Remove(ctx context.Context, aggregate *order.Order) error {
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
func (r *Repository) Get(ctx context.Context, code kernel.BoundedID) (*order.Order, error) {
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
