package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/token"
	"github.com/lao-sha/fissionmall/internal/core/ports"
)

const (
	ActionUpdateTokenInfo   = "update token info"
	ActionUpdateTokenStatus = "update token status"
	ActionUpdateTokenPrice  = "update token price"
	ActionUpdateTokenStock  = "update token stock"
	ActionDeleteToken       = "delete token"
)

// CreateTokenCommandHandler lists a token and indexes it by institution,
// creator account and status.
type CreateTokenCommandHandler struct {
	uowFactory TokenUoWFactory
	clock      ports.Clock
}

func NewCreateTokenCommandHandler(uowFactory TokenUoWFactory, clock ports.Clock) CreateTokenCommandHandler {
	return CreateTokenCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateTokenCommandHandler) Handle(ctx context.Context, cmd CreateTokenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := token.NewToken(cmd.Code(), cmd.InstitutionCode(), cmd.Info(), cmd.Caller(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		return uow.TokenRepository().Add(ctx, aggregate)
	})
}

type tokenMutation struct {
	uowFactory TokenUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func (m tokenMutation) run(
	ctx context.Context,
	caller kernel.AccountID,
	ref TokenRef,
	action string,
	apply func(*token.Token, kernel.Timestamp) error,
) error {
	uow := m.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.TokenRepository()
		aggregate, err := repo.Get(ctx, ref.Code(), ref.InstitutionCode())
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

type UpdateTokenInfoCommandHandler struct {
	tokenMutation
}

func NewUpdateTokenInfoCommandHandler(
	uowFactory TokenUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateTokenInfoCommandHandler {
	return UpdateTokenInfoCommandHandler{tokenMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateTokenInfoCommandHandler) Handle(ctx context.Context, cmd UpdateTokenInfoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.TokenRef, ActionUpdateTokenInfo,
		func(t *token.Token, at kernel.Timestamp) error {
			return t.UpdateInfo(cmd.Update(), at)
		})
}

type UpdateTokenStatusCommandHandler struct {
	tokenMutation
}

func NewUpdateTokenStatusCommandHandler(
	uowFactory TokenUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateTokenStatusCommandHandler {
	return UpdateTokenStatusCommandHandler{tokenMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateTokenStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTokenStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.TokenRef, ActionUpdateTokenStatus,
		func(t *token.Token, at kernel.Timestamp) error {
			return t.UpdateStatus(cmd.Status(), at)
		})
}

// UpdateTokenPriceCommandHandler sets a new positive price.
type UpdateTokenPriceCommandHandler struct {
	tokenMutation
}

func NewUpdateTokenPriceCommandHandler(
	uowFactory TokenUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateTokenPriceCommandHandler {
	return UpdateTokenPriceCommandHandler{tokenMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateTokenPriceCommandHandler) Handle(ctx context.Context, cmd TokenAmountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.TokenRef, ActionUpdateTokenPrice,
		func(t *token.Token, at kernel.Timestamp) error {
			return t.UpdatePrice(cmd.Amount(), at)
		})
}

// UpdateTokenStockCommandHandler overwrites the stock counter.
type UpdateTokenStockCommandHandler struct {
	tokenMutation
}

func NewUpdateTokenStockCommandHandler(
	uowFactory TokenUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) UpdateTokenStockCommandHandler {
	return UpdateTokenStockCommandHandler{tokenMutation{uowFactory, clock, authorizer}}
}

func (h *UpdateTokenStockCommandHandler) Handle(ctx context.Context, cmd TokenAmountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.run(ctx, cmd.Caller(), cmd.TokenRef, ActionUpdateTokenStock,
		func(t *token.Token, at kernel.Timestamp) error {
			t.UpdateStock(cmd.Amount(), at)
			return nil
		})
}

// TradeTokenCommandHandler executes a trade for any caller. Trading a Buy
// listing also files the token under the caller's account.
type TradeTokenCommandHandler struct {
	uowFactory TokenUoWFactory
	clock      ports.Clock
}

func NewTradeTokenCommandHandler(uowFactory TokenUoWFactory, clock ports.Clock) TradeTokenCommandHandler {
	return TradeTokenCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *TradeTokenCommandHandler) Handle(ctx context.Context, cmd TokenAmountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.TokenRepository()
		aggregate, err := repo.Get(ctx, cmd.Code(), cmd.InstitutionCode())
		if err != nil {
			return err
		}
		if err := aggregate.Trade(cmd.Caller(), cmd.Amount(), h.clock.Now()); err != nil {
			return err
		}
		if err := repo.Update(ctx, aggregate); err != nil {
			return err
		}
		if aggregate.Direction() == token.Buy {
			return repo.AddToAccount(ctx, cmd.Caller(), aggregate)
		}
		return nil
	})
}

type DeleteTokenCommandHandler struct {
	uowFactory TokenUoWFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

func NewDeleteTokenCommandHandler(
	uowFactory TokenUoWFactory,
	clock ports.Clock,
	authorizer kernel.Authorizer,
) DeleteTokenCommandHandler {
	return DeleteTokenCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		authorizer: authorizer,
	}
}

func (h *DeleteTokenCommandHandler) Handle(ctx context.Context, cmd TokenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return transact(ctx, uow, func() error {
		repo := uow.TokenRepository()
		aggregate, err := repo.Get(ctx, cmd.Code(), cmd.InstitutionCode())
		if err != nil {
			return err
		}
		if err := h.authorizer.Authorize(cmd.Caller(), ActionDeleteToken, aggregate); err != nil {
			return err
		}
		aggregate.MarkDeleted(h.clock.Now())
		return repo.Remove(ctx, aggregate)
	})
}
