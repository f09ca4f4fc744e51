package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

const (
	ActionUpdateOrderStatus      = "update order status"
	ActionUpdateOrderExpressInfo = "update order express info"
	ActionCancelOrder            = "cancel order"
	ActionDeleteOrder            = "delete order"
)

// CreateOrderCommandHandler places a Pending order. Totals are derived from
// the lines and the freight fee.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.Code(),
		cmd.MemberCode(),
		cmd.InstitutionCode(),
		cmd.Items(),
		cmd.Freight(),
		cmd.Contact(),
		cmd.Caller(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		return uow.OrderRepository().Add(ctx, aggregate)
	})
}

type orderMutation struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func (m orderMutation) run(
	ctx context.Context,
	caller kernel.AccountID,
	code kernel.BoundedID,
	action string,
	apply func(*order.Order, kernel.Timestamp) error,
) error {
	uow := m.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.OrderRepository()
		aggregate, err := repo.Get(ctx, code)
		if err != nil {
			return err
		}
		if err := m.authorizer.Authorize(caller, action, aggregate); err != nil {
			return err
		}
		if err := apply(aggregate, m.clock.Now()); err != nil {
			return err
		}
		return repo.Update(ctx, aggregate)
	})
}

// UpdateOrderStatusCommandHandler moves an order along the plain order graph.
type UpdateOrderStatusCommandHandler struct {
	orderMutation
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{orderMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.Code(), ActionUpdateOrderStatus,
		func(o *order.Order, at kernel.Timestamp) error {
			return o.UpdateStatus(cmd.Status(), at)
		})
}

// UpdateOrderExpressInfoCommandHandler stores shipping details without
// touching the status.
type UpdateOrderExpressInfoCommandHandler struct {
	orderMutation
}

func NewUpdateOrderExpressInfoCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateOrderExpressInfoCommandHandler {
	return UpdateOrderExpressInfoCommandHandler{orderMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateOrderExpressInfoCommandHandler) Handle(ctx context.Context, cmd UpdateOrderExpressInfoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.Code(), ActionUpdateOrderExpressInfo,
		func(o *order.Order, at kernel.Timestamp) error {
			return o.UpdateExpressInfo(cmd.Company(), cmd.Number(), at)
		})
}

type CancelOrderCommandHandler struct {
	orderMutation
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{orderMutation{uowFactory, clock, authorizer}}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.Code(), ActionCancelOrder, (*order.Order).Cancel)
}

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.OrderRepository()
		aggregate, err := repo.Get(ctx, cmd.Code())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionDeleteOrder, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
