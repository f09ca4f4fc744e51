package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

const (
	ActionUpdateInstitutionStatus = "update institution status"
	ActionUpdateInstitutionInfo   = "update institution info"
	ActionDeleteInstitution       = "delete institution"
)

type CreateInstitutionCommandHandler struct {
	uowFactory InstitutionUoWFactory
	clock      ports.Clock
}

func NewCreateInstitutionCommandHandler(uowFactory InstitutionUoWFactory, clock ports.Clock) CreateInstitutionCommandHandler {
	return CreateInstitutionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateInstitutionCommandHandler) Handle(ctx context.Context, cmd CreateInstitutionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := institution.NewInstitution(cmd.ID(), cmd.Info(), cmd.Caller(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		return uow.InstitutionRepository().Add(ctx, aggregate)
	})
}

type institutionMutation struct {
	uowFactory InstitutionUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func (m institutionMutation) run(
	ctx context.Context,
	caller kernel.AccountID,
	id kernel.BoundedID,
	action string,
	apply func(*institution.Institution, kernel.Timestamp) error,
) error {
	uow := m.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.InstitutionRepository()
		aggregate, err := repo.Get(ctx, id)
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

// UpdateInstitutionStatusCommandHandler moves an institution along the
// certification graph. Deactivated institutions stay deactivated.
type UpdateInstitutionStatusCommandHandler struct {
	institutionMutation
}

func NewUpdateInstitutionStatusCommandHandler(
	uowFactory InstitutionUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateInstitutionStatusCommandHandler {
	return UpdateInstitutionStatusCommandHandler{institutionMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateInstitutionStatusCommandHandler) Handle(ctx context.Context, cmd UpdateInstitutionStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.ID(), ActionUpdateInstitutionStatus,
		func(i *institution.Institution, at kernel.Timestamp) error {
			return i.UpdateStatus(cmd.Status(), at)
		})
}

type UpdateInstitutionInfoCommandHandler struct {
	institutionMutation
}

func NewUpdateInstitutionInfoCommandHandler(
	uowFactory InstitutionUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateInstitutionInfoCommandHandler {
	return UpdateInstitutionInfoCommandHandler{institutionMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateInstitutionInfoCommandHandler) Handle(ctx context.Context, cmd UpdateInstitutionInfoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.ID(), ActionUpdateInstitutionInfo,
		func(i *institution.Institution, at kernel.Timestamp) error {
			i.UpdateInfo(cmd.Update(), at)
			return nil
		})
}

type DeleteInstitutionCommandHandler struct {
	uowFactory InstitutionUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewDeleteInstitutionCommandHandler(
	uowFactory InstitutionUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) DeleteInstitutionCommandHandler {
	return DeleteInstitutionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *DeleteInstitutionCommandHandler) Handle(ctx context.Context, cmd InstitutionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.InstitutionRepository()
		aggregate, err := repo.Get(ctx, cmd.ID())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionDeleteInstitution, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
