package commands

import (
	"errors"
	"fmt"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
	ErrUpdateProductInfoCommandIsNotConstructed = errors.New(
		"UpdateProductInfoCommand must be created via NewUpdateProductInfoCommand constructor",
	)
	ErrUpdateProductStatusCommandIsNotConstructed = errors.New(
		"UpdateProductStatusCommand must be created via NewUpdateProductStatusCommand constructor",
	)
	ErrProductAmountCommandIsNotConstructed = errors.New(
		"ProductAmountCommand must be created via NewProductAmountCommand constructor",
	)
	ErrProductCommandIsNotConstructed = errors.New(
		"ProductCommand must be created via NewProductCommand constructor",
	)
)

// ProductRef addresses a product by its code and the code of its institution.
type ProductRef struct {
	code            kernel.BoundedID
	institutionCode kernel.BoundedID
}

func newProductRef(code, institutionCode string) (ProductRef, error) {
	var ref ProductRef
	var codeErr, institutionErr error
	ref.code, codeErr = kernel.NewRequiredCode("product code", code)
	ref.institutionCode, institutionErr = kernel.NewRequiredCode("institution code", institutionCode)
	return ref, errors.Join(codeErr, institutionErr)
}

func (r ProductRef) Code() kernel.BoundedID            { return r.code }
func (r ProductRef) InstitutionCode() kernel.BoundedID { return r.institutionCode }

// ProductListing holds the raw catalogue fields of a new product.
type ProductListing struct {
	Name             string
	Category         string
	Brand            string
	AuthorizedGroups []string
	OriginalPrice    uint64
	CurrentPrice     uint64
	Description      string
	MainImage        string
	DetailImages     []string
	Weight           uint32
	ProfitRatio      uint32
	Stock            uint64
}

// CreateProductCommand lists a product as Available. Price and profit ratio
// rules are enforced by the aggregate.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	ProductRef

	caller  kernel.AccountID
	details product.Details
	stock   uint64

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(caller, code, institutionCode string, listing ProductListing) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		details: product.Details{
			OriginalPrice: listing.OriginalPrice,
			CurrentPrice:  listing.CurrentPrice,
			Weight:        listing.Weight,
			ProfitRatio:   listing.ProfitRatio,
		},
		stock: listing.Stock,
		guard: guard.NewConstructorGuard(),
	}

	d := &cmd.details
	var callerErr, refErr, nameErr, categoryErr, brandErr, groupsErr, descriptionErr, mainErr, detailErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.ProductRef, refErr = newProductRef(code, institutionCode)
	d.Name, nameErr = kernel.NewBoundedID("product name", listing.Name, kernel.MaxNameLength)
	d.Category, categoryErr = kernel.NewBoundedID("product category", listing.Category, kernel.MaxNameLength)
	d.Brand, brandErr = kernel.NewBoundedID("product brand", listing.Brand, kernel.MaxNameLength)
	d.AuthorizedGroups, groupsErr = boundedList("authorized group", listing.AuthorizedGroups, kernel.MaxCodeLength)
	d.Description, descriptionErr = kernel.NewBoundedID("description", listing.Description, kernel.MaxTextLength)
	d.MainImage, mainErr = kernel.NewBoundedID("main image", listing.MainImage, kernel.MaxURLLength)
	d.DetailImages, detailErr = boundedList("detail image", listing.DetailImages, kernel.MaxURLLength)

	if err := errors.Join(
		callerErr, refErr,
		nameErr, categoryErr, brandErr, groupsErr, descriptionErr, mainErr, detailErr,
	); err != nil {
		return CreateProductCommand{}, err
	}
	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Caller() kernel.AccountID { return c.caller }
func (c CreateProductCommand) Details() product.Details { return c.details }
func (c CreateProductCommand) Stock() uint64            { return c.stock }

// ProductInfoChanges carries optional replacements; nil fields are kept.
type ProductInfoChanges struct {
	Name             *string
	Category         *string
	Brand            *string
	AuthorizedGroups *[]string
	OriginalPrice    *uint64
	CurrentPrice     *uint64
	Description      *string
	MainImage        *string
	DetailImages     *[]string
	Weight           *uint32
	ProfitRatio      *uint32
}

// UpdateProductInfoCommand merges catalogue changes. The price rule is checked
// against the merged product.
type UpdateProductInfoCommand struct { //nolint:recvcheck //using for validation
	ProductRef

	caller kernel.AccountID
	update product.DetailsUpdate

	guard guard.ConstructorGuard
}

func NewUpdateProductInfoCommand(
	caller, code, institutionCode string,
	changes ProductInfoChanges,
) (UpdateProductInfoCommand, error) {
	cmd := UpdateProductInfoCommand{
		update: product.DetailsUpdate{
			OriginalPrice: changes.OriginalPrice,
			CurrentPrice:  changes.CurrentPrice,
			Weight:        changes.Weight,
			ProfitRatio:   changes.ProfitRatio,
		},
		guard: guard.NewConstructorGuard(),
	}

	u := &cmd.update
	var callerErr, refErr, nameErr, categoryErr, brandErr, groupsErr, descriptionErr, mainErr, detailErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.ProductRef, refErr = newProductRef(code, institutionCode)
	u.Name, nameErr = kernel.NewOptionalText("product name", changes.Name, kernel.MaxNameLength)
	u.Category, categoryErr = kernel.NewOptionalText("product category", changes.Category, kernel.MaxNameLength)
	u.Brand, brandErr = kernel.NewOptionalText("product brand", changes.Brand, kernel.MaxNameLength)
	u.Description, descriptionErr = kernel.NewOptionalText("description", changes.Description, kernel.MaxTextLength)
	u.MainImage, mainErr = kernel.NewOptionalText("main image", changes.MainImage, kernel.MaxURLLength)
	if changes.AuthorizedGroups != nil {
		var groups []kernel.BoundedID
		groups, groupsErr = boundedList("authorized group", *changes.AuthorizedGroups, kernel.MaxCodeLength)
		u.AuthorizedGroups = &groups
	}
	if changes.DetailImages != nil {
		var images []kernel.BoundedID
		images, detailErr = boundedList("detail image", *changes.DetailImages, kernel.MaxURLLength)
		u.DetailImages = &images
	}

	if err := errors.Join(
		callerErr, refErr,
		nameErr, categoryErr, brandErr, groupsErr, descriptionErr, mainErr, detailErr,
	); err != nil {
		return UpdateProductInfoCommand{}, err
	}
	return cmd, nil
}

func (c UpdateProductInfoCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductInfoCommandIsNotConstructed)
}

func (c UpdateProductInfoCommand) Caller() kernel.AccountID      { return c.caller }
func (c UpdateProductInfoCommand) Update() product.DetailsUpdate { return c.update }

type UpdateProductStatusCommand struct { //nolint:recvcheck //using for validation
	ProductRef

	caller kernel.AccountID
	status kernel.Availability

	guard guard.ConstructorGuard
}

func NewUpdateProductStatusCommand(caller, code, institutionCode string, status uint8) (UpdateProductStatusCommand, error) {
	cmd := UpdateProductStatusCommand{guard: guard.NewConstructorGuard()}

	var callerErr, refErr, statusErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.ProductRef, refErr = newProductRef(code, institutionCode)
	cmd.status, statusErr = kernel.AvailabilityFromCode(status)

	if err := errors.Join(callerErr, refErr, statusErr); err != nil {
		return UpdateProductStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateProductStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductStatusCommandIsNotConstructed)
}

func (c UpdateProductStatusCommand) Caller() kernel.AccountID    { return c.caller }
func (c UpdateProductStatusCommand) Status() kernel.Availability { return c.status }

// ProductAmountCommand carries the new stock or the purchased quantity.
type ProductAmountCommand struct { //nolint:recvcheck //using for validation
	ProductRef

	caller kernel.AccountID
	amount uint64

	guard guard.ConstructorGuard
}

func NewProductAmountCommand(caller, code, institutionCode string, amount uint64) (ProductAmountCommand, error) {
	cmd := ProductAmountCommand{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}

	var callerErr, refErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.ProductRef, refErr = newProductRef(code, institutionCode)

	if err := errors.Join(callerErr, refErr); err != nil {
		return ProductAmountCommand{}, err
	}
	return cmd, nil
}

func (c ProductAmountCommand) Validate() error {
	return c.guard.Validate(ErrProductAmountCommandIsNotConstructed)
}

func (c ProductAmountCommand) Caller() kernel.AccountID { return c.caller }
func (c ProductAmountCommand) Amount() uint64           { return c.amount }

type ProductCommand struct { //nolint:recvcheck //using for validation
	ProductRef

	caller kernel.AccountID

	guard guard.ConstructorGuard
}

func NewProductCommand(caller, code, institutionCode string) (ProductCommand, error) {
	cmd := ProductCommand{guard: guard.NewConstructorGuard()}

	var callerErr, refErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.ProductRef, refErr = newProductRef(code, institutionCode)

	if err := errors.Join(callerErr, refErr); err != nil {
		return ProductCommand{}, err
	}
	return cmd, nil
}

func (c ProductCommand) Validate() error {
	return c.guard.Validate(ErrProductCommandIsNotConstructed)
}

func (c ProductCommand) Caller() kernel.AccountID { return c.caller }

// boundedList bounds every element of raw. List length limits belong to the
// aggregate.
func boundedList(paramName string, raw []string, maxLen int) ([]kernel.BoundedID, error) {
	out := make([]kernel.BoundedID, 0, len(raw))
	var errList []error
	for i, s := range raw {
		id, err := kernel.NewBoundedID(fmt.Sprintf("%s %d", paramName, i), s, maxLen)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		out = append(out, id)
	}
	return out, errors.Join(errList...)
}
