package queries

import (
	"context"
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var ErrListBucketQueryIsNotConstructed = errors.New(
	"ListBucketQuery must be created via NewListBucketQuery constructor",
)

// ListBucketQuery lists the primary keys filed under one bucket of an index
// family, in insertion order. Status buckets are named by the decimal status
// code, owner buckets by the account and group buckets by the group code.
//
// Example:
//
//	query, _ := NewListBucketQuery("c2c_order", "status", "1")
//	keys, err := NewListBucketQueryHandler(uowFactory).Handle(ctx, query)
type ListBucketQuery struct {
	kind   Kind
	family string
	bucket string

	guard guard.ConstructorGuard
}

func NewListBucketQuery(kind, family, bucket string) (ListBucketQuery, error) {
	k, kindErr := KindFromString(kind)
	var familyErr error
	if family == "" {
		familyErr = errs.NewValueIsRequiredError("family")
	}
	if err := errors.Join(kindErr, familyErr); err != nil {
		return ListBucketQuery{}, err
	}
	return ListBucketQuery{kind: k, family: family, bucket: bucket, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBucketQuery) Validate() error {
	return q.guard.Validate(ErrListBucketQueryIsNotConstructed)
}

func (q ListBucketQuery) Kind() Kind     { return q.kind }
func (q ListBucketQuery) Family() string { return q.family }
func (q ListBucketQuery) Bucket() string { return q.bucket }

type ListBucketQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListBucketQueryHandler(uowFactory ports.UnitOfWorkFactory) ListBucketQueryHandler {
	return ListBucketQueryHandler{uowFactory: uowFactory}
}

// Handle returns an empty, non-nil slice for an empty bucket and a
// ValueIsInvalidError for a family the kind does not index.
func (h ListBucketQueryHandler) Handle(ctx context.Context, query ListBucketQuery) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]string, error) {
		keys, err := indexedRepository(uow, query.Kind()).Members(ctx, query.Family(), query.Bucket())
		if err != nil {
			return nil, err
		}
		if keys == nil {
			keys = []string{}
		}
		return keys, nil
	})
}
