package order

import (
	"errors"
	"math"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// MaxOrderItems bounds the number of line items on one order.
const MaxOrderItems = 100

// Item is one order line. Price and weight are per unit.
type Item struct {
	productCode  kernel.BoundedID
	quantity     uint32
	pricePerUnit uint32
	weight       uint32
}

func NewItem(productCode kernel.BoundedID, quantity, pricePerUnit, weight uint32) (Item, error) {
	if productCode.IsEmpty() {
		return Item{}, errs.NewValueIsRequiredError("product code")
	}
	if quantity == 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("must be greater than 0"))
	}
	return Item{
		productCode:  productCode,
		quantity:     quantity,
		pricePerUnit: pricePerUnit,
		weight:       weight,
	}, nil
}

func (i Item) ProductCode() kernel.BoundedID { return i.productCode }
func (i Item) Quantity() uint32              { return i.quantity }
func (i Item) PricePerUnit() uint32          { return i.pricePerUnit }
func (i Item) Weight() uint32                { return i.weight }

// Subtotal is price times quantity, saturating at math.MaxUint32.
func (i Item) Subtotal() uint32 {
	return saturatingMul(i.pricePerUnit, i.quantity)
}

// TotalWeight is weight times quantity, saturating at math.MaxUint32.
func (i Item) TotalWeight() uint32 {
	return saturatingMul(i.weight, i.quantity)
}

// Contact holds optional buyer contact details. Empty fields are absent.
type Contact struct {
	phone   kernel.BoundedID
	email   kernel.BoundedID
	address kernel.BoundedID
}

func NewContact(phone, email, address string) (Contact, error) {
	p, pErr := kernel.NewBoundedID("phone", phone, kernel.MaxPhoneLength)
	e, eErr := kernel.NewBoundedID("email", email, kernel.MaxEmailLength)
	a, aErr := kernel.NewBoundedID("address", address, kernel.MaxTextLength)
	if err := errors.Join(pErr, eErr, aErr); err != nil {
		return Contact{}, err
	}
	return Contact{phone: p, email: e, address: a}, nil
}

func (c Contact) Phone() kernel.BoundedID   { return c.phone }
func (c Contact) Email() kernel.BoundedID   { return c.email }
func (c Contact) Address() kernel.BoundedID { return c.address }

func saturatingMul(a, b uint32) uint32 {
	p := uint64(a) * uint64(b)
	if p > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(p)
}

func saturatingAdd(a, b uint32) uint32 {
	s := uint64(a) + uint64(b)
	if s > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}
