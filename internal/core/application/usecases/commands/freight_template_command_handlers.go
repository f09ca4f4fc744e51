package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

const (
	ActionUpdateFreightTemplate = "update freight template"
	ActionDeleteFreightTemplate = "delete freight template"
)

type CreateFreightTemplateCommandHandler struct {
	uowFactory FreightTemplateUoWFactory
	clock      ports.Clock
}

func NewCreateFreightTemplateCommandHandler(
	uowFactory FreightTemplateUoWFactory,
	clock ports.Clock,
) CreateFreightTemplateCommandHandler {
	return CreateFreightTemplateCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateFreightTemplateCommandHandler) Handle(ctx context.Context, cmd CreateFreightTemplateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := freight.NewTemplate(cmd.Area(), cmd.Fees(), cmd.Caller(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		return uow.FreightTemplateRepository().Add(ctx, aggregate)
	})
}

type UpdateFreightTemplateCommandHandler struct {
	uowFactory FreightTemplateUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewUpdateFreightTemplateCommandHandler(
	uowFactory FreightTemplateUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateFreightTemplateCommandHandler {
	return UpdateFreightTemplateCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *UpdateFreightTemplateCommandHandler) Handle(ctx context.Context, cmd UpdateFreightTemplateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.FreightTemplateRepository()
		aggregate, err := repo.Get(ctx, cmd.Area())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionUpdateFreightTemplate, aggregate); err != nil {
			return err
		}
		aggregate.Update(cmd.Update(), h.clock.Now())
		return repo.Update(ctx, aggregate)
	})
}

type DeleteFreightTemplateCommandHandler struct {
	uowFactory FreightTemplateUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewDeleteFreightTemplateCommandHandler(
	uowFactory FreightTemplateUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) DeleteFreightTemplateCommandHandler {
	return DeleteFreightTemplateCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *DeleteFreightTemplateCommandHandler) Handle(ctx context.Context, cmd FreightTemplateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.FreightTemplateRepository()
		aggregate, err := repo.Get(ctx, cmd.Area())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionDeleteFreightTemplate, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
