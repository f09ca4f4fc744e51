package cmd

import (
	"fmt"
	"log/slog"

	httpin "github.com/lao-sha/fissionmall/internal/adapters/in/http"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/jobs"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	uowFactory *storage.UnitOfWorkFactory
	clock      ports.Clock
	authorizer kernel.Authorizer
}

// NewCompositionRoot wires the use cases over backend. The authorizer admits
// the record's creator and every configured operator account.
func NewCompositionRoot(
	config Config,
	backend records.Backend,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
	opts ...storage.Option,
) (CompositionRoot, error) {
	operators := make([]kernel.AccountID, 0, len(config.OperatorAccounts))
	for _, raw := range config.OperatorAccounts {
		account, err := kernel.NewAccountID(raw)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("operator account %q: %w", raw, err)
		}
		operators = append(operators, account)
	}

	return CompositionRoot{
		config:     config,
		logger:     logger,
		uowFactory: storage.NewUnitOfWorkFactory(backend, publisher, logger, opts...),
		clock:      clock,
		authorizer: kernel.AnyOf(kernel.CreatorOnly(), kernel.Accounts(operators...)),
	}, nil
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateC2COrderHandlers(),
		c.CreateOrderHandlers(),
		c.CreateTokenHandlers(),
		c.CreateInstitutionHandlers(),
		c.CreateProductHandlers(),
		c.CreateFreightTemplateHandlers(),
		c.CreatePaymentMethodHandlers(),
		httpin.IndexHandlers{
			List:  queries.NewListBucketQueryHandler(c.uowFactory),
			Audit: queries.NewAuditIndexesQueryHandler(c.uowFactory),
		},
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(queries.NewAuditIndexesQueryHandler(c.uowFactory), c.config.AuditSchedule, c.logger)
}

func (c *CompositionRoot) CreateC2COrderHandlers() httpin.C2COrderHandlers {
	var f commands.C2COrderUoWFactory = FuncC2COrderUoWFactory(func() commands.C2COrderUoW {
		return c.uowFactory.Create()
	})
	return httpin.C2COrderHandlers{
		Create:       commands.NewCreateC2COrderCommandHandler(f, c.clock),
		UpdateStatus: commands.NewUpdateC2COrderStatusCommandHandler(f, c.clock, c.authorizer),
		Cancel:       commands.NewCancelC2COrderCommandHandler(f, c.clock, c.authorizer),
		Complete:     commands.NewCompleteC2COrderCommandHandler(f, c.clock, c.authorizer),
		Delete:       commands.NewDeleteC2COrderCommandHandler(f, c.clock, c.authorizer),
		Get:          queries.NewGetC2COrderQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateOrderHandlers() httpin.OrderHandlers {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return httpin.OrderHandlers{
		Create:            commands.NewCreateOrderCommandHandler(f, c.clock),
		UpdateStatus:      commands.NewUpdateOrderStatusCommandHandler(f, c.clock, c.authorizer),
		UpdateExpressInfo: commands.NewUpdateOrderExpressInfoCommandHandler(f, c.clock, c.authorizer),
		Cancel:            commands.NewCancelOrderCommandHandler(f, c.clock, c.authorizer),
		Delete:            commands.NewDeleteOrderCommandHandler(f, c.clock, c.authorizer),
		Get:               queries.NewGetOrderQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateTokenHandlers() httpin.TokenHandlers {
	var f commands.TokenUoWFactory = FuncTokenUoWFactory(func() commands.TokenUoW {
		return c.uowFactory.Create()
	})
	return httpin.TokenHandlers{
		Create:       commands.NewCreateTokenCommandHandler(f, c.clock),
		UpdateInfo:   commands.NewUpdateTokenInfoCommandHandler(f, c.clock, c.authorizer),
		UpdateStatus: commands.NewUpdateTokenStatusCommandHandler(f, c.clock, c.authorizer),
		UpdatePrice:  commands.NewUpdateTokenPriceCommandHandler(f, c.clock, c.authorizer),
		UpdateStock:  commands.NewUpdateTokenStockCommandHandler(f, c.clock, c.authorizer),
		Trade:        commands.NewTradeTokenCommandHandler(f, c.clock),
		Delete:       commands.NewDeleteTokenCommandHandler(f, c.clock, c.authorizer),
		Get:          queries.NewGetTokenQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateInstitutionHandlers() httpin.InstitutionHandlers {
	var f commands.InstitutionUoWFactory = FuncInstitutionUoWFactory(func() commands.InstitutionUoW {
		return c.uowFactory.Create()
	})
	return httpin.InstitutionHandlers{
		Create:       commands.NewCreateInstitutionCommandHandler(f, c.clock),
		UpdateStatus: commands.NewUpdateInstitutionStatusCommandHandler(f, c.clock, c.authorizer),
		UpdateInfo:   commands.NewUpdateInstitutionInfoCommandHandler(f, c.clock, c.authorizer),
		Delete:       commands.NewDeleteInstitutionCommandHandler(f, c.clock, c.authorizer),
		Get:          queries.NewGetInstitutionQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateProductHandlers() httpin.ProductHandlers {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return httpin.ProductHandlers{
		Create:       commands.NewCreateProductCommandHandler(f, c.clock),
		UpdateInfo:   commands.NewUpdateProductInfoCommandHandler(f, c.clock, c.authorizer),
		UpdateStatus: commands.NewUpdateProductStatusCommandHandler(f, c.clock, c.authorizer),
		UpdateStock:  commands.NewUpdateProductStockCommandHandler(f, c.clock, c.authorizer),
		Purchase:     commands.NewPurchaseProductCommandHandler(f, c.clock),
		Delete:       commands.NewDeleteProductCommandHandler(f, c.clock, c.authorizer),
		Get:          queries.NewGetProductQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateFreightTemplateHandlers() httpin.FreightTemplateHandlers {
	var f commands.FreightTemplateUoWFactory = FuncFreightTemplateUoWFactory(func() commands.FreightTemplateUoW {
		return c.uowFactory.Create()
	})
	return httpin.FreightTemplateHandlers{
		Create: commands.NewCreateFreightTemplateCommandHandler(f, c.clock),
		Update: commands.NewUpdateFreightTemplateCommandHandler(f, c.clock, c.authorizer),
		Delete: commands.NewDeleteFreightTemplateCommandHandler(f, c.clock, c.authorizer),
		Get:    queries.NewGetFreightTemplateQueryHandler(c.uowFactory),
		Quote:  queries.NewQuoteFreightQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreatePaymentMethodHandlers() httpin.PaymentMethodHandlers {
	var f commands.PaymentMethodUoWFactory = FuncPaymentMethodUoWFactory(func() commands.PaymentMethodUoW {
		return c.uowFactory.Create()
	})
	return httpin.PaymentMethodHandlers{
		Set:         commands.NewSetPaymentMethodCommandHandler(f, c.clock, c.authorizer),
		UpdateField: commands.NewUpdatePaymentFieldCommandHandler(f, c.clock, c.authorizer),
		Remove:      commands.NewRemovePaymentMethodCommandHandler(f, c.clock, c.authorizer),
		Get:         queries.NewGetPaymentMethodQueryHandler(c.uowFactory),
	}
}

type FuncC2COrderUoWFactory func() commands.C2COrderUoW

func (f FuncC2COrderUoWFactory) Create() commands.C2COrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTokenUoWFactory func() commands.TokenUoW

func (f FuncTokenUoWFactory) Create() commands.TokenUoW {
	return f()
}

type FuncInstitutionUoWFactory func() commands.InstitutionUoW

func (f FuncInstitutionUoWFactory) Create() commands.InstitutionUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncFreightTemplateUoWFactory func() commands.FreightTemplateUoW

func (f FuncFreightTemplateUoWFactory) Create() commands.FreightTemplateUoW {
	return f()
}

type FuncPaymentMethodUoWFactory func() commands.PaymentMethodUoW

func (f FuncPaymentMethodUoWFactory) Create() commands.PaymentMethodUoW {
	return f()
}
