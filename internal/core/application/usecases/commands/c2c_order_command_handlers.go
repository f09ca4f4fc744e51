package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

// Authorization actions checked by the c2c order handlers.
const (
	ActionUpdateC2COrderStatus = "update c2c order status"
	ActionCancelC2COrder       = "cancel c2c order"
	ActionCompleteC2COrder     = "complete c2c order"
	ActionDeleteC2COrder       = "delete c2c order"
)

// CreateC2COrderCommandHandler inserts a Pending order and indexes it by
// member, institution and status. Any caller may create an order and becomes
// its creator.
type CreateC2COrderCommandHandler struct {
	uowFactory C2COrderUoWFactory
	clock      ports.Clock
}

func NewCreateC2COrderCommandHandler(uowFactory C2COrderUoWFactory, clock ports.Clock) CreateC2COrderCommandHandler {
	return CreateC2COrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle fails with ObjectAlreadyExistsError for a taken code and with
// IndexIsFullError when a bucket is full. Nothing is stored in either case.
func (h *CreateC2COrderCommandHandler) Handle(ctx context.Context, cmd CreateC2COrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := c2corder.NewOrder(
		cmd.Code(),
		cmd.MemberCode(),
		cmd.InstitutionCode(),
		cmd.Direction(),
		cmd.TransactionAmount(),
		cmd.TotalAmount(),
		cmd.Caller(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		return uow.C2COrderRepository().Add(ctx, aggregate)
	})
}

// c2cOrderMutation is the shared shape of the handlers that load one order,
// authorize the caller and change it.
type c2cOrderMutation struct {
	uowFactory C2COrderUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func (m c2cOrderMutation) run(
	ctx context.Context,
	caller kernel.AccountID,
	code kernel.BoundedID,
	action string,
	apply func(*c2corder.Order, kernel.Timestamp) error,
) error {
	uow := m.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.C2COrderRepository()
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

// UpdateC2COrderStatusCommandHandler moves an order along the c2c transition
// table and its key between status buckets.
type UpdateC2COrderStatusCommandHandler struct {
	c2cOrderMutation
}

func NewUpdateC2COrderStatusCommandHandler(
	uowFactory C2COrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateC2COrderStatusCommandHandler {
	return UpdateC2COrderStatusCommandHandler{c2cOrderMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateC2COrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateC2COrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.Code(), ActionUpdateC2COrderStatus,
		func(o *c2corder.Order, at kernel.Timestamp) error {
			return o.UpdateStatus(cmd.Status(), at)
		})
}

// CancelC2COrderCommandHandler cancels a Pending or Paid order.
type CancelC2COrderCommandHandler struct {
	c2cOrderMutation
}

func NewCancelC2COrderCommandHandler(
	uowFactory C2COrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) CancelC2COrderCommandHandler {
	return CancelC2COrderCommandHandler{c2cOrderMutation{uowFactory, clock, authorizer}}
}

func (h *CancelC2COrderCommandHandler) Handle(ctx context.Context, cmd C2COrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.Code(), ActionCancelC2COrder, (*c2corder.Order).Cancel)
}

// CompleteC2COrderCommandHandler completes a Delivered or Notarizing order.
type CompleteC2COrderCommandHandler struct {
	c2cOrderMutation
}

func NewCompleteC2COrderCommandHandler(
	uowFactory C2COrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) CompleteC2COrderCommandHandler {
	return CompleteC2COrderCommandHandler{c2cOrderMutation{uowFactory, clock, authorizer}}
}

func (h *CompleteC2COrderCommandHandler) Handle(ctx context.Context, cmd C2COrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.Code(), ActionCompleteC2COrder, (*c2corder.Order).Complete)
}

// DeleteC2COrderCommandHandler removes an order and every index entry
// pointing at it.
type DeleteC2COrderCommandHandler struct {
	uowFactory C2COrderUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewDeleteC2COrderCommandHandler(
	uowFactory C2COrderUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) DeleteC2COrderCommandHandler {
	return DeleteC2COrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *DeleteC2COrderCommandHandler) Handle(ctx context.Context, cmd C2COrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.C2COrderRepository()
		aggregate, err := repo.Get(ctx, cmd.Code())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionDeleteC2COrder, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
