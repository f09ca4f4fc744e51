// Package queries contains read operations. Every handler reads inside one
// backend transaction that is rolled back when the handler returns, so a query
// never observes a half-applied command.
package queries

import (
	"context"
	"fmt"
	"slices"

	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Kind names a record kind. Values match the storage namespaces.
type Kind string

const (
	KindC2COrder        Kind = "c2c_order"
	KindOrder           Kind = "order"
	KindToken           Kind = "token"
	KindInstitution     Kind = "institution"
	KindProduct         Kind = "product"
	KindFreightTemplate Kind = "freight_template"
	KindPaymentMethod   Kind = "payment_method"
)

// Kinds lists every record kind in audit order.
func Kinds() []Kind {
	return []Kind{
		KindC2COrder,
		KindOrder,
		KindToken,
		KindInstitution,
		KindProduct,
		KindFreightTemplate,
		KindPaymentMethod,
	}
}

func KindFromString(raw string) (Kind, error) {
	kind := Kind(raw)
	if !slices.Contains(Kinds(), kind) {
		return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a record kind", raw))
	}
	return kind, nil
}

func indexedRepository(uow ports.UnitOfWork, kind Kind) ports.Indexed {
	switch kind {
	case KindC2COrder:
		return uow.C2COrderRepository()
	case KindOrder:
		return uow.OrderRepository()
	case KindToken:
		return uow.TokenRepository()
	case KindInstitution:
		return uow.InstitutionRepository()
	case KindProduct:
		return uow.ProductRepository()
	case KindFreightTemplate:
		return uow.FreightTemplateRepository()
	case KindPaymentMethod:
		return uow.PaymentMethodRepository()
	}
	return nil
}

// inReadTx runs fn in a transaction that is always rolled back.
func inReadTx[V any](ctx context.Context, factory ports.UnitOfWorkFactory, fn func(uow ports.UnitOfWork) (V, error)) (V, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		var zero V
		return zero, err
	}
	defer func() { _ = uow.Rollback(ctx) }()
	return fn(uow)
}
