package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

const (
	ActionUpdateProductInfo   = "update product info"
	ActionUpdateProductStatus = "update product status"
	ActionUpdateProductStock  = "update product stock"
	ActionDeleteProduct       = "delete product"
)

type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	clock      ports.Clock
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory, clock ports.Clock) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := product.NewProduct(
		cmd.Code(),
		cmd.InstitutionCode(),
		cmd.Details(),
		cmd.Stock(),
		cmd.Caller(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		return uow.ProductRepository().Add(ctx, aggregate)
	})
}

// productMutation skips authorization when authorizer is nil.
type productMutation struct {
	uowFactory ProductUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func (m productMutation) run(
	ctx context.Context,
	caller kernel.AccountID,
	ref ProductRef,
	action string,
	apply func(*product.Product, kernel.Timestamp) error,
) error {
	uow := m.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.ProductRepository()
		aggregate, err := repo.Get(ctx, ref.Code(), ref.InstitutionCode())
		if err != nil {
			return err
		}
		if m.authorizer != nil {
			if err := m.authorizer.Authorize(caller, action, aggregate); err != nil {
				return err
			}
		}
		if err := apply(aggregate, m.clock.Now()); err != nil {
			return err
		}
		return repo.Update(ctx, aggregate)
	})
}

type UpdateProductInfoCommandHandler struct {
	productMutation
}

func NewUpdateProductInfoCommandHandler(
	uowFactory ProductUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateProductInfoCommandHandler {
	return UpdateProductInfoCommandHandler{productMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateProductInfoCommandHandler) Handle(ctx context.Context, cmd UpdateProductInfoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.ProductRef, ActionUpdateProductInfo,
		func(p *product.Product, at kernel.Timestamp) error {
			return p.UpdateDetails(cmd.Update(), at)
		})
}

type UpdateProductStatusCommandHandler struct {
	productMutation
}

func NewUpdateProductStatusCommandHandler(
	uowFactory ProductUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateProductStatusCommandHandler {
	return UpdateProductStatusCommandHandler{productMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateProductStatusCommandHandler) Handle(ctx context.Context, cmd UpdateProductStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.ProductRef, ActionUpdateProductStatus,
		func(p *product.Product, at kernel.Timestamp) error {
			return p.UpdateStatus(cmd.Status(), at)
		})
}

type UpdateProductStockCommandHandler struct {
	productMutation
}

func NewUpdateProductStockCommandHandler(
	uowFactory ProductUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateProductStockCommandHandler {
	return UpdateProductStockCommandHandler{productMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateProductStockCommandHandler) Handle(ctx context.Context, cmd ProductAmountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.ProductRef, ActionUpdateProductStock,
		func(p *product.Product, at kernel.Timestamp) error {
			p.UpdateStock(cmd.Amount(), at)
			return nil
		})
}

// PurchaseProductCommandHandler sells stock to any caller.
type PurchaseProductCommandHandler struct {
	productMutation
}

func NewPurchaseProductCommandHandler(uowFactory ProductUoWFactory, clock ports.Clock) PurchaseProductCommandHandler {
	return PurchaseProductCommandHandler{productMutation{uowFactory: uowFactory, clock: clock}}
}

func (h *PurchaseProductCommandHandler) Handle(ctx context.Context, cmd ProductAmountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.ProductRef, "",
		func(p *product.Product, at kernel.Timestamp) error {
			return p.Purchase(cmd.Caller(), cmd.Amount(), at)
		})
}

type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewDeleteProductCommandHandler(
	uowFactory ProductUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *DeleteProductCommandHandler) Handle(ctx context.Context, cmd ProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.ProductRepository()
		aggregate, err := repo.Get(ctx, cmd.Code(), cmd.InstitutionCode())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionDeleteProduct, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
