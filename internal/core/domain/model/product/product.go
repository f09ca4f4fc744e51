// Package product models catalogue products sold by an institution.
package product

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

const (
	MaxAuthorizedGroups = 20
	MaxDetailImages     = 10

	// PartsPerBillion is a profit ratio of 100%.
	PartsPerBillion uint32 = 1_000_000_000
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

const (
	EventCreated       = "product.created"
	EventUpdated       = "product.updated"
	EventStatusUpdated = "product.status_updated"
	EventStockUpdated  = "product.stock_updated"
	EventPurchased     = "product.purchased"
	EventDeleted       = "product.deleted"
)

// Details are the catalogue fields of a product.
type Details struct {
	Name             kernel.BoundedID
	Category         kernel.BoundedID
	Brand            kernel.BoundedID
	AuthorizedGroups []kernel.BoundedID
	OriginalPrice    uint64
	CurrentPrice     uint64
	Description      kernel.BoundedID
	MainImage        kernel.BoundedID
	DetailImages     []kernel.BoundedID
	Weight           uint32
	ProfitRatio      uint32
}

// DetailsUpdate carries optional replacements; nil fields are kept.
type DetailsUpdate struct {
	Name             *kernel.BoundedID
	Category         *kernel.BoundedID
	Brand            *kernel.BoundedID
	AuthorizedGroups *[]kernel.BoundedID
	OriginalPrice    *uint64
	CurrentPrice     *uint64
	Description      *kernel.BoundedID
	MainImage        *kernel.BoundedID
	DetailImages     *[]kernel.BoundedID
	Weight           *uint32
	ProfitRatio      *uint32
}

// Product is keyed by the pair (product code, institution code).
type Product struct {
	kernel.AggregateRoot

	code            kernel.BoundedID
	institutionCode kernel.BoundedID
	details         Details
	stock           uint64
	sales           uint64
	status          kernel.Availability

	creator   kernel.AccountID
	createdAt kernel.Timestamp
	updatedAt kernel.Timestamp

	isConstructed bool
}

func NewProduct(
	code, institutionCode kernel.BoundedID,
	details Details,
	stock uint64,
	creator kernel.AccountID,
	at kernel.Timestamp,
) (*Product, error) {
	p := &Product{
		institutionCode: institutionCode,
		stock:           stock,
		status:          kernel.Available,
		createdAt:       at,
		updatedAt:       at,
		isConstructed:   true,
	}

	if err := errors.Join(
		p.setCode(code),
		p.setDetails(details),
		p.setCreator(creator),
	); err != nil {
		return nil, err
	}

	p.RaiseDomainEvent(kernel.NewEvent(EventCreated, p.Key(), at, "creator", creator.String()))
	return p, nil
}

func RestoreProduct(
	code, institutionCode kernel.BoundedID,
	details Details,
	stock, sales uint64,
	status kernel.Availability,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Product, error) {
	p := &Product{
		institutionCode: institutionCode,
		stock:           stock,
		sales:           sales,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if _, err := kernel.AvailabilityFromCode(status.Code()); err != nil {
		return nil, err
	}
	p.status = status

	if err := errors.Join(
		p.setCode(code),
		p.setDetails(details),
		p.setCreator(creator),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// Key is the primary key of the product.
func Key(code, institutionCode kernel.BoundedID) string {
	return kernel.CompositeKey(code, institutionCode)
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) Key() string                       { return Key(p.code, p.institutionCode) }
func (p *Product) Code() kernel.BoundedID            { return p.code }
func (p *Product) InstitutionCode() kernel.BoundedID { return p.institutionCode }
func (p *Product) Details() Details                  { return cloneDetails(p.details) }
func (p *Product) Stock() uint64                     { return p.stock }
func (p *Product) Sales() uint64                     { return p.sales }
func (p *Product) Status() kernel.Availability       { return p.status }
func (p *Product) Creator() kernel.AccountID         { return p.creator }
func (p *Product) CreatedAt() kernel.Timestamp       { return p.createdAt }
func (p *Product) UpdatedAt() kernel.Timestamp       { return p.updatedAt }

// UpdateDetails merges the update into the current details and validates the
// result as a whole, so lowering the original price below the current one is
// rejected even when only one of them is given.
func (p *Product) UpdateDetails(update DetailsUpdate, at kernel.Timestamp) error {
	merged := cloneDetails(p.details)
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Brand != nil {
		merged.Brand = *update.Brand
	}
	if update.AuthorizedGroups != nil {
		merged.AuthorizedGroups = slices.Clone(*update.AuthorizedGroups)
	}
	if update.OriginalPrice != nil {
		merged.OriginalPrice = *update.OriginalPrice
	}
	if update.CurrentPrice != nil {
		merged.CurrentPrice = *update.CurrentPrice
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.MainImage != nil {
		merged.MainImage = *update.MainImage
	}
	if update.DetailImages != nil {
		merged.DetailImages = slices.Clone(*update.DetailImages)
	}
	if update.Weight != nil {
		merged.Weight = *update.Weight
	}
	if update.ProfitRatio != nil {
		merged.ProfitRatio = *update.ProfitRatio
	}

	if err := p.setDetails(merged); err != nil {
		return err
	}

	p.touch(at)
	p.RaiseDomainEvent(kernel.NewEvent(EventUpdated, p.Key(), p.updatedAt))
	return nil
}

func (p *Product) UpdateStatus(status kernel.Availability, at kernel.Timestamp) error {
	next, err := p.status.Transition(status)
	if err != nil {
		return err
	}

	p.status = next
	p.touch(at)
	p.RaiseDomainEvent(kernel.NewEvent(EventStatusUpdated, p.Key(), p.updatedAt,
		"status", strconv.Itoa(int(next.Code()))))
	return nil
}

func (p *Product) UpdateStock(stock uint64, at kernel.Timestamp) {
	p.stock = stock
	p.touch(at)
	p.RaiseDomainEvent(kernel.NewEvent(EventStockUpdated, p.Key(), p.updatedAt,
		"stock", strconv.FormatUint(stock, 10)))
}

// Purchase takes quantity units out of stock. Any account may purchase an
// Available product.
func (p *Product) Purchase(buyer kernel.AccountID, quantity uint64, at kernel.Timestamp) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	if p.status != kernel.Available {
		return errs.NewOperationNotAllowedError("purchase", p.status.String())
	}
	if quantity == 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("must be greater than 0"))
	}
	if p.stock < quantity {
		return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 1, p.stock,
			errors.New("insufficient stock"))
	}

	p.stock -= quantity
	if p.sales+quantity >= p.sales {
		p.sales += quantity
	} else {
		p.sales = ^uint64(0)
	}

	p.touch(at)
	p.RaiseDomainEvent(kernel.NewEvent(EventPurchased, p.Key(), p.updatedAt,
		"buyer", buyer.String(), "quantity", strconv.FormatUint(quantity, 10)))
	return nil
}

func (p *Product) MarkDeleted(at kernel.Timestamp) {
	p.RaiseDomainEvent(kernel.NewEvent(EventDeleted, p.Key(), p.updatedAt.Max(at)))
}

func (p *Product) touch(at kernel.Timestamp) {
	p.updatedAt = p.updatedAt.Max(at)
}

func (p *Product) setCode(code kernel.BoundedID) error {
	if code.IsEmpty() {
		return errs.NewValueIsRequiredError("product code")
	}
	p.code = code
	return nil
}

func (p *Product) setDetails(details Details) error {
	if details.CurrentPrice > details.OriginalPrice {
		return errs.NewValueIsInvalidErrorWithCause("current price",
			fmt.Errorf("%d exceeds original price %d", details.CurrentPrice, details.OriginalPrice))
	}
	if details.ProfitRatio > PartsPerBillion {
		return errs.NewValueIsOutOfRangeError("profit ratio", details.ProfitRatio, 0, PartsPerBillion)
	}
	if len(details.AuthorizedGroups) > MaxAuthorizedGroups {
		return errs.NewValueIsOutOfRangeError("authorized groups", len(details.AuthorizedGroups), 0, MaxAuthorizedGroups)
	}
	if len(details.DetailImages) > MaxDetailImages {
		return errs.NewValueIsOutOfRangeError("detail images", len(details.DetailImages), 0, MaxDetailImages)
	}
	p.details = cloneDetails(details)
	return nil
}

func (p *Product) setCreator(creator kernel.AccountID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	p.creator = creator
	return nil
}

func cloneDetails(d Details) Details {
	d.AuthorizedGroups = slices.Clone(d.AuthorizedGroups)
	d.DetailImages = slices.Clone(d.DetailImages)
	return d
}
