// Package commands contains the operations that modify stored records.
// Every handler follows the same pattern: validate the command, open a unit of
// work, load, authorize, apply the aggregate's rules, write and commit.
package commands

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each group of handlers touches.
type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	C2COrderRepoFactory interface {
		C2COrderRepository() ports.C2COrderRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TokenRepoFactory interface {
		TokenRepository() ports.TokenRepository
	}

	InstitutionRepoFactory interface {
		InstitutionRepository() ports.InstitutionRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	FreightTemplateRepoFactory interface {
		FreightTemplateRepository() ports.FreightTemplateRepository
	}

	PaymentMethodRepoFactory interface {
		PaymentMethodRepository() ports.PaymentMethodRepository
	}

	// C2COrderUoW manages transactions for c2c order handlers.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.C2COrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	C2COrderUoW interface {
		TxManager
		C2COrderRepoFactory
	}

	C2COrderUoWFactory interface {
		Create() C2COrderUoW
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	TokenUoW interface {
		TxManager
		TokenRepoFactory
	}

	TokenUoWFactory interface {
		Create() TokenUoW
	}

	InstitutionUoW interface {
		TxManager
		InstitutionRepoFactory
	}

	InstitutionUoWFactory interface {
		Create() InstitutionUoW
	}

	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	FreightTemplateUoW interface {
		TxManager
		FreightTemplateRepoFactory
	}

	FreightTemplateUoWFactory interface {
		Create() FreightTemplateUoW
	}

	PaymentMethodUoW interface {
		TxManager
		PaymentMethodRepoFactory
	}

	PaymentMethodUoWFactory interface {
		Create() PaymentMethodUoW
	}
)

// transact runs fn inside uow and commits when fn succeeds. The deferred
// Rollback is a no-op after a successful Commit.
func transact(ctx context.Context, uow TxManager, fn func() error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
