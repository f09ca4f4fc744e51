package queries

import (
	"context"
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var ErrQuoteFreightQueryIsNotConstructed = errors.New(
	"QuoteFreightQuery must be created via NewQuoteFreightQuery constructor",
)

// QuoteFreightQuery prices a parcel of the given weight with the template of
// a delivery area.
type QuoteFreightQuery struct {
	area   kernel.BoundedID
	weight uint32

	guard guard.ConstructorGuard
}

func NewQuoteFreightQuery(area string, weight uint32) (QuoteFreightQuery, error) {
	a, err := kernel.NewRequiredCode("area", area)
	if err != nil {
		return QuoteFreightQuery{}, err
	}
	return QuoteFreightQuery{area: a, weight: weight, guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteFreightQuery) Validate() error {
	return q.guard.Validate(ErrQuoteFreightQueryIsNotConstructed)
}

type FreightQuote struct {
	Area   string `json:"area"`
	Weight uint32 `json:"weight"`
	Fee    uint32 `json:"fee"`
}

type QuoteFreightQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewQuoteFreightQueryHandler(uowFactory ports.UnitOfWorkFactory) QuoteFreightQueryHandler {
	return QuoteFreightQueryHandler{uowFactory: uowFactory}
}

func (h QuoteFreightQueryHandler) Handle(ctx context.Context, query QuoteFreightQuery) (FreightQuote, error) {
	if err := query.Validate(); err != nil {
		return FreightQuote{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (FreightQuote, error) {
		t, err := uow.FreightTemplateRepository().Get(ctx, query.area)
		if err != nil {
			return FreightQuote{}, err
		}
		return FreightQuote{Area: query.area.String(), Weight: query.weight, Fee: t.Quote(query.weight)}, nil
	})
}
