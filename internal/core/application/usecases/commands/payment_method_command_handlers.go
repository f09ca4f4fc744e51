package commands

import (
	"context"
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

const (
	ActionSetPaymentMethod    = "set payment method"
	ActionUpdatePaymentField  = "update payment field"
	ActionRemovePaymentMethod = "remove payment method"
)

// SetPaymentMethodCommandHandler creates the payment method of an institution
// when it is absent. Otherwise it replaces every channel, which only an
// authorized caller may do.
type SetPaymentMethodCommandHandler struct {
	uowFactory PaymentMethodUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewSetPaymentMethodCommandHandler(
	uowFactory PaymentMethodUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) SetPaymentMethodCommandHandler {
	return SetPaymentMethodCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *SetPaymentMethodCommandHandler) Handle(ctx context.Context, cmd SetPaymentMethodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.PaymentMethodRepository()
		aggregate, err := repo.Get(ctx, cmd.InstitutionID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			created, err := payment.NewMethod(cmd.InstitutionID(), cmd.Channels(), cmd.Caller(), h.clock.Now())
			if err != nil {
				return err
			}
			return repo.Add(ctx, created)
		}
		if err != nil {
			return err
		}

		if err := h.authorizer.Authorize(cmd.Caller(), ActionSetPaymentMethod, aggregate); err != nil {
			return err
		}
		if err := aggregate.Replace(cmd.Channels(), h.clock.Now()); err != nil {
			return err
		}
		return repo.Update(ctx, aggregate)
	})
}

// UpdatePaymentFieldCommandHandler changes one channel of an existing
// payment method. At least one channel must remain.
type UpdatePaymentFieldCommandHandler struct {
	uowFactory PaymentMethodUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewUpdatePaymentFieldCommandHandler(
	uowFactory PaymentMethodUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdatePaymentFieldCommandHandler {
	return UpdatePaymentFieldCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *UpdatePaymentFieldCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentFieldCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.PaymentMethodRepository()
		aggregate, err := repo.Get(ctx, cmd.InstitutionID())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionUpdatePaymentField, aggregate); err != nil {
			return err
		}
		if err := aggregate.SetField(cmd.Field(), cmd.Value(), h.clock.Now()); err != nil {
			return err
		}
		return repo.Update(ctx, aggregate)
	})
}

type RemovePaymentMethodCommandHandler struct {
	uowFactory PaymentMethodUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewRemovePaymentMethodCommandHandler(
	uowFactory PaymentMethodUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) RemovePaymentMethodCommandHandler {
	return RemovePaymentMethodCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *RemovePaymentMethodCommandHandler) Handle(ctx context.Context, cmd PaymentMethodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.PaymentMethodRepository()
		aggregate, err := repo.Get(ctx, cmd.InstitutionID())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionRemovePaymentMethod, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
