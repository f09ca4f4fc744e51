package tokenrepo

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/token"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var _ ports.TokenRepository = (*Repository)(nil)

// Repository implements ports.TokenRepository. The account index starts with
// the creator and grows as accounts trade the token, so it is an open family.
type Repository struct {
	tx         records.Tx
	tracker    ports.AggregateTracker
	accounts   records.Index
	collection records.Collection[TokenDTO]
}

func NewRepository(tx records.Tx, tracker ports.AggregateTracker, capacities records.Capacities) *Repository {
	accounts := records.NewIndex(Kind, ports.IndexAccount, capacities.Owner)
	return &Repository{
		tx:       tx,
		tracker:  tracker,
		accounts: accounts,
		collection: records.Collection[TokenDTO]{
			Table: records.NewTable[TokenDTO](Kind),
			Key:   TokenDTO.key,
			Families: []records.Family[TokenDTO]{
				{
					Index:  records.NewIndex(Kind, ports.IndexInstitution, capacities.Group),
					Bucket: func(dto TokenDTO) string { return string(dto.InstitutionCode) },
				},
				{
					Index:  accounts,
					Bucket: func(dto TokenDTO) string { return string(dto.Creator) },
					Open:   true,
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

func (r *Repository) Add(ctx context.Context, aggregate *token.Token) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Create(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *token.Token) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.collection.Save(ctx, r.tx, fromDomain(aggregate)); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

// Remove deletes the token and drops it from every account bucket.
func (r *Repository) Remove(ctx context.Context, aggregate *token.Token) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.Delete(ctx, r.tx, aggregate.Key()); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

func (r *Repository) Get(ctx context.Context, code, institutionCode kernel.BoundedID) (*token.Token, error) {
	dto, err := r.collection.Get(ctx, r.tx, token.Key(code, institutionCode))
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

// AddToAccount is a no-op when the account already holds the token and fails
// with IndexIsFullError when the account bucket is full.
func (r *Repository) AddToAccount(ctx context.Context, account kernel.AccountID, aggregate *token.Token) error {
	return r.accounts.Add(ctx, r.tx, account.String(), aggregate.Key())
}

func (r *Repository) Members(ctx context.Context, family, bucket string) ([]string, error) {
	return r.collection.Members(ctx, r.tx, family, bucket)
}

func (r *Repository) Snapshot(ctx context.Context) (records.Snapshot, error) {
	return r.collection.Snapshot(ctx, r.tx)
}
