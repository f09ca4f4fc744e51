package freightrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.FreightTemplateRepository = (*Repository)(nil)

type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	collection records.Collection[TemplateDTO]
}

func NewRepository(tx records.Tx, tracker ports.AggregateTracker, capacities records.Capacities) *Repository {
	return &Repository{
		tx:      tx,
		tracker: tracker,
		collection: records.Collection[TemplateDTO]{
			Table: records.NewTable[TemplateDTO](Kind),
			Key:   func(dto TemplateDTO) string { return string(dto.Area) },
			Families: []records.Family[TemplateDTO]{
				{
					Index:  records.NewIndex(Kind, ports.IndexCreator, capacities.Owner),
					Bucket: func(dto TemplateDTO) string { return string(dto.Creator) },
				},
			},
		},
	}
}

func (r *Repository) Add(ctx context.Context, aggregate *freight.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Area().String(), aggregate)
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *freight.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Area().String(), aggregate)
	return nil
}

func (r *Repository) Remove(ctx context.Context, aggregate *freight.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.Delete(ctx, r.tx, aggregate.Area().String()); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Area().String(), aggregate)
	return nil
}

func (r *Repository) Get(ctx context.Context, area kernel.BoundedID) (*freight.Template, error) {
	dto, err := r.collection.Get(ctx, r.tx, area.String())
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
