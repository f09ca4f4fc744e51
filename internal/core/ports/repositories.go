package ports

import (
	"context"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/token"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

// Index family names shared by the repositories.
const (
	IndexMember      = "member"
	IndexInstitution = "institution"
	IndexStatus      = "status"
	IndexCreator     = "creator"
	IndexAccount     = "account"
)

// Indexed exposes the secondary indexes of a repository.
type Indexed interface {
	// Members lists the primary keys in one bucket of an index family.
	// An unknown family yields a ValueIsInvalidError.
	Members(ctx context.Context, family, bucket string) ([]string, error)

	// Snapshot reads records and buckets for an index audit.
	Snapshot(ctx context.Context) (records.Snapshot, error)
}

// C2COrderRepository persists c2c orders. Indexes: member, institution, status.
type C2COrderRepository interface {
	Indexed
	// Add fails with ObjectAlreadyExistsError for a taken code and with
	// IndexIsFullError when any bucket is full; nothing is written then.
	Add(ctx context.Context, aggregate *c2corder.Order) error
	// Update stores the aggregate and moves its status bucket if needed.
	Update(ctx context.Context, aggregate *c2corder.Order) error
	// Remove deletes the record and all of its index entries.
	Remove(ctx context.Context, aggregate *c2corder.Order) error
	Get(ctx context.Context, code kernel.BoundedID) (*c2corder.Order, error)
}

// OrderRepository persists orders. Indexes: member, institution, status.
type OrderRepository interface {
	Indexed
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error
	Remove(ctx context.Context, aggregate *order.Order) error
	Get(ctx context.Context, code kernel.BoundedID) (*order.Order, error)
}

// TokenRepository persists tokens. Indexes: institution, account, status.
type TokenRepository interface {
	Indexed
	Add(ctx context.Context, aggregate *token.Token) error
	Update(ctx context.Context, aggregate *token.Token) error
	Remove(ctx context.Context, aggregate *token.Token) error
	Get(ctx context.Context, code, institutionCode kernel.BoundedID) (*token.Token, error)
	// AddToAccount records that account holds the token. Adding twice is a no-op.
	AddToAccount(ctx context.Context, account kernel.AccountID, aggregate *token.Token) error
}

// InstitutionRepository persists institutions. Indexes: creator, status.
type InstitutionRepository interface {
	Indexed
	Add(ctx context.Context, aggregate *institution.Institution) error
	Update(ctx context.Context, aggregate *institution.Institution) error
	Remove(ctx context.Context, aggregate *institution.Institution) error
	Get(ctx context.Context, id kernel.BoundedID) (*institution.Institution, error)
}

// ProductRepository persists products. Indexes: institution, status.
type ProductRepository interface {
	Indexed
	Add(ctx context.Context, aggregate *product.Product) error
	Update(ctx context.Context, aggregate *product.Product) error
	Remove(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, code, institutionCode kernel.BoundedID) (*product.Product, error)
}

// FreightTemplateRepository persists freight templates. Index: creator.
type FreightTemplateRepository interface {
	Indexed
	Add(ctx context.Context, aggregate *freight.Template) error
	Update(ctx context.Context, aggregate *freight.Template) error
	Remove(ctx context.Context, aggregate *freight.Template) error
	Get(ctx context.Context, area kernel.BoundedID) (*freight.Template, error)
}

// PaymentMethodRepository persists payment methods. Index: creator.
type PaymentMethodRepository interface {
	Indexed
	Add(ctx context.Context, aggregate *payment.Method) error
	Update(ctx context.Context, aggregate *payment.Method) error
	Remove(ctx context.Context, aggregate *payment.Method) error
	Get(ctx context.Context, institutionID kernel.BoundedID) (*payment.Method, error)
}
