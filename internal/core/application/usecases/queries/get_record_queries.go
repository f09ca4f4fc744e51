package queries

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrGetRecordQueryIsNotConstructed = errors.New(
		"GetRecordQuery must be created via NewGetRecordQuery constructor",
	)
	ErrGetListedRecordQueryIsNotConstructed = errors.New(
		"GetListedRecordQuery must be created via NewGetListedRecordQuery constructor",
	)
)

// GetRecordQuery reads one record by its single-part key: a c2c order or
// order code, an institution id, a delivery area or the institution id of a
// payment method.
//
// Example:
//
//	query, err := NewGetRecordQuery("O1")
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetC2COrderQueryHandler(uowFactory).Handle(ctx, query)
type GetRecordQuery struct {
	key kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewGetRecordQuery(key string) (GetRecordQuery, error) {
	id, err := kernel.NewRequiredCode("key", key)
	if err != nil {
		return GetRecordQuery{}, err
	}
	return GetRecordQuery{key: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetRecordQueryIsNotConstructed)
}

func (q GetRecordQuery) Key() kernel.BoundedID { return q.key }

// GetListedRecordQuery reads a token or a product, which are keyed by their
// own code together with the listing institution.
type GetListedRecordQuery struct {
	code            kernel.BoundedID
	institutionCode kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewGetListedRecordQuery(code, institutionCode string) (GetListedRecordQuery, error) {
	c, codeErr := kernel.NewRequiredCode("code", code)
	i, institutionErr := kernel.NewRequiredCode("institution code", institutionCode)
	if err := errors.Join(codeErr, institutionErr); err != nil {
		return GetListedRecordQuery{}, err
	}
	return GetListedRecordQuery{code: c, institutionCode: i, guard: guard.NewConstructorGuard()}, nil
}

func (q GetListedRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetListedRecordQueryIsNotConstructed)
}

func (q GetListedRecordQuery) Code() kernel.BoundedID            { return q.code }
func (q GetListedRecordQuery) InstitutionCode() kernel.BoundedID { return q.institutionCode }
