package institutionrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.InstitutionRepository = (*Repository)(nil)

type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	collection records.Collection[InstitutionDTO]
}

func NewRepository(tx records.Tx, tracker ports.AggregateTracker, capacities records.Capacities) *Repository {
	return &Repository{
		tx:      tx,
		tracker: tracker,
		collection: records.Collection[InstitutionDTO]{
			Table: records.NewTable[InstitutionDTO](Kind),
			Key:   func(dto InstitutionDTO) string { return string(dto.ID) },
			Families: []records.Family[InstitutionDTO]{
				{
					Index:  records.NewIndex(Kind, ports.IndexCreator, capacities.Owner),
					Bucket: func(dto InstitutionDTO) string { return string(dto.Creator) },
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

func (r *Repository) Add(ctx context.Context, aggregate *institution.Institution) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *institution.Institution) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

func (r *Repository) Remove(ctx context.Context, aggregate *institution.Institution) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.Delete(ctx, r.tx, aggregate.ID().String()); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

func (r *Repository) Get(ctx context.Context, id kernel.BoundedID) (*institution.Institution, error) {
	dto, err := r.collection.Get(ctx, r.tx, id.String())
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
