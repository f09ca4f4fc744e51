package queries

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/ports"
)

// GetC2COrderQueryHandler reads one c2c order. A missing order yields an
// ObjectNotFoundError.
type GetC2COrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetC2COrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetC2COrderQueryHandler {
	return GetC2COrderQueryHandler{uowFactory: uowFactory}
}

func (h GetC2COrderQueryHandler) Handle(ctx context.Context, query GetRecordQuery) (C2COrderView, error) {
	if err := query.Validate(); err != nil {
		return C2COrderView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (C2COrderView, error) {
		o, err := uow.C2COrderRepository().Get(ctx, query.Key())
		if err != nil {
			return C2COrderView{}, err
		}
		return newC2COrderView(o), nil
	})
}

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetRecordQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (OrderView, error) {
		o, err := uow.OrderRepository().Get(ctx, query.Key())
		if err != nil {
			return OrderView{}, err
		}
		return newOrderView(o), nil
	})
}

type GetTokenQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetTokenQueryHandler(uowFactory ports.UnitOfWorkFactory) GetTokenQueryHandler {
	return GetTokenQueryHandler{uowFactory: uowFactory}
}

func (h GetTokenQueryHandler) Handle(ctx context.Context, query GetListedRecordQuery) (TokenView, error) {
	if err := query.Validate(); err != nil {
		return TokenView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (TokenView, error) {
		t, err := uow.TokenRepository().Get(ctx, query.Code(), query.InstitutionCode())
		if err != nil {
			return TokenView{}, err
		}
		return newTokenView(t), nil
	})
}

type GetInstitutionQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetInstitutionQueryHandler(uowFactory ports.UnitOfWorkFactory) GetInstitutionQueryHandler {
	return GetInstitutionQueryHandler{uowFactory: uowFactory}
}

func (h GetInstitutionQueryHandler) Handle(ctx context.Context, query GetRecordQuery) (InstitutionView, error) {
	if err := query.Validate(); err != nil {
		return InstitutionView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (InstitutionView, error) {
		i, err := uow.InstitutionRepository().Get(ctx, query.Key())
		if err != nil {
			return InstitutionView{}, err
		}
		return newInstitutionView(i), nil
	})
}

type GetProductQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetProductQueryHandler(uowFactory ports.UnitOfWorkFactory) GetProductQueryHandler {
	return GetProductQueryHandler{uowFactory: uowFactory}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetListedRecordQuery) (ProductView, error) {
	if err := query.Validate(); err != nil {
		return ProductView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (ProductView, error) {
		p, err := uow.ProductRepository().Get(ctx, query.Code(), query.InstitutionCode())
		if err != nil {
			return ProductView{}, err
		}
		return newProductView(p), nil
	})
}

type GetFreightTemplateQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetFreightTemplateQueryHandler(uowFactory ports.UnitOfWorkFactory) GetFreightTemplateQueryHandler {
	return GetFreightTemplateQueryHandler{uowFactory: uowFactory}
}

func (h GetFreightTemplateQueryHandler) Handle(ctx context.Context, query GetRecordQuery) (FreightTemplateView, error) {
	if err := query.Validate(); err != nil {
		return FreightTemplateView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (FreightTemplateView, error) {
		t, err := uow.FreightTemplateRepository().Get(ctx, query.Key())
		if err != nil {
			return FreightTemplateView{}, err
		}
		return newFreightTemplateView(t), nil
	})
}

type GetPaymentMethodQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetPaymentMethodQueryHandler(uowFactory ports.UnitOfWorkFactory) GetPaymentMethodQueryHandler {
	return GetPaymentMethodQueryHandler{uowFactory: uowFactory}
}

func (h GetPaymentMethodQueryHandler) Handle(ctx context.Context, query GetRecordQuery) (PaymentMethodView, error) {
	if err := query.Validate(); err != nil {
		return PaymentMethodView{}, err
	}
	return inReadTx(ctx, h.uowFactory, func(uow ports.UnitOfWork) (PaymentMethodView, error) {
		m, err := uow.PaymentMethodRepository().Get(ctx, query.Key())
		if err != nil {
			return PaymentMethodView{}, err
		}
		return newPaymentMethodView(m), nil
	})
}
