// Package token models tradable tokens listed by an institution.
package token

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var ErrTokenIsNotConstructed = errors.New("Token must be created via NewToken or RestoreToken")

const (
	EventCreated       = "token.created"
	EventUpdated       = "token.updated"
	EventStatusUpdated = "token.status_updated"
	EventPriceUpdated  = "token.price_updated"
	EventStockUpdated  = "token.stock_updated"
	EventTraded        = "token.traded"
	EventDeleted       = "token.deleted"
)

// Token is keyed by the pair (token code, institution code).
type Token struct {
	kernel.AggregateRoot

	code            kernel.BoundedID
	institutionCode kernel.BoundedID

	name      kernel.BoundedID
	category  kernel.BoundedID
	price     uint64
	direction Direction
	stock     uint64
	sales     uint64
	status    kernel.Availability

	creator   kernel.AccountID
	createdAt kernel.Timestamp
	updatedAt kernel.Timestamp

	isConstructed bool
}

// Info holds the descriptive fields set on creation.
type Info struct {
	Name      kernel.BoundedID
	Category  kernel.BoundedID
	Price     uint64
	Direction Direction
	Stock     uint64
}

// InfoUpdate carries the optional fields of an info update. Nil fields are
// left unchanged.
type InfoUpdate struct {
	Name      *kernel.BoundedID
	Category  *kernel.BoundedID
	Price     *uint64
	Direction *Direction
}

// NewToken lists a token as Available with no sales.
func NewToken(
	code, institutionCode kernel.BoundedID,
	info Info,
	creator kernel.AccountID,
	at kernel.Timestamp,
) (*Token, error) {
	t := &Token{
		institutionCode: institutionCode,
		name:            info.Name,
		category:        info.Category,
		stock:           info.Stock,
		status:          kernel.Available,
		createdAt:       at,
		updatedAt:       at,
		isConstructed:   true,
	}

	if err := errors.Join(
		t.setCode(code),
		t.setPrice(info.Price),
		t.setDirection(info.Direction),
		t.setCreator(creator),
	); err != nil {
		return nil, err
	}

	t.RaiseDomainEvent(kernel.NewEvent(EventCreated, t.Key(), at, "creator", creator.String()))
	return t, nil
}

// RestoreToken rebuilds a persisted token without raising events.
func RestoreToken(
	code, institutionCode kernel.BoundedID,
	info Info,
	sales uint64,
	status kernel.Availability,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Token, error) {
	t := &Token{
		institutionCode: institutionCode,
		name:            info.Name,
		category:        info.Category,
		stock:           info.Stock,
		sales:           sales,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if _, err := kernel.AvailabilityFromCode(status.Code()); err != nil {
		return nil, err
	}
	t.status = status

	if err := errors.Join(
		t.setCode(code),
		t.setPrice(info.Price),
		t.setDirection(info.Direction),
		t.setCreator(creator),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Key is the primary key of the token.
func Key(code, institutionCode kernel.BoundedID) string {
	return kernel.CompositeKey(code, institutionCode)
}

func (t *Token) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTokenIsNotConstructed
	}
	return nil
}

func (t *Token) Key() string                       { return Key(t.code, t.institutionCode) }
func (t *Token) Code() kernel.BoundedID            { return t.code }
func (t *Token) InstitutionCode() kernel.BoundedID { return t.institutionCode }
func (t *Token) Name() kernel.BoundedID            { return t.name }
func (t *Token) Category() kernel.BoundedID        { return t.category }
func (t *Token) Price() uint64                     { return t.price }
func (t *Token) Direction() Direction              { return t.direction }
func (t *Token) Stock() uint64                     { return t.stock }
func (t *Token) Sales() uint64                     { return t.sales }
func (t *Token) Status() kernel.Availability       { return t.status }
func (t *Token) Creator() kernel.AccountID         { return t.creator }
func (t *Token) CreatedAt() kernel.Timestamp       { return t.createdAt }
func (t *Token) UpdatedAt() kernel.Timestamp       { return t.updatedAt }

// UpdateInfo applies the non-nil fields. Nothing changes if any field is invalid.
func (t *Token) UpdateInfo(update InfoUpdate, at kernel.Timestamp) error {
	if update.Price != nil && *update.Price == 0 {
		return errPriceIsZero()
	}
	if update.Direction != nil {
		if _, err := DirectionFromCode(update.Direction.Code()); err != nil {
			return err
		}
	}

	if update.Name != nil {
		t.name = *update.Name
	}
	if update.Category != nil {
		t.category = *update.Category
	}
	if update.Price != nil {
		t.price = *update.Price
	}
	if update.Direction != nil {
		t.direction = *update.Direction
	}

	t.touch(at)
	t.RaiseDomainEvent(kernel.NewEvent(EventUpdated, t.Key(), t.updatedAt))
	return nil
}

func (t *Token) UpdateStatus(status kernel.Availability, at kernel.Timestamp) error {
	next, err := t.status.Transition(status)
	if err != nil {
		return err
	}

	t.status = next
	t.touch(at)
	t.RaiseDomainEvent(kernel.NewEvent(EventStatusUpdated, t.Key(), t.updatedAt,
		"status", strconv.Itoa(int(next.Code()))))
	return nil
}

func (t *Token) UpdatePrice(price uint64, at kernel.Timestamp) error {
	if err := t.setPrice(price); err != nil {
		return err
	}

	t.touch(at)
	t.RaiseDomainEvent(kernel.NewEvent(EventPriceUpdated, t.Key(), t.updatedAt,
		"price", strconv.FormatUint(price, 10)))
	return nil
}

func (t *Token) UpdateStock(stock uint64, at kernel.Timestamp) {
	t.stock = stock
	t.touch(at)
	t.RaiseDomainEvent(kernel.NewEvent(EventStockUpdated, t.Key(), t.updatedAt,
		"stock", strconv.FormatUint(stock, 10)))
}

// Trade executes quantity units against the token's listed direction. Any
// account may trade an Available token.
//
// A Sell listing hands units out of stock into sales and needs enough stock.
// A Buy listing takes units into stock.
func (t *Token) Trade(trader kernel.AccountID, quantity uint64, at kernel.Timestamp) error {
	if err := trader.Validate(); err != nil {
		return err
	}
	if t.status != kernel.Available {
		return errs.NewOperationNotAllowedError("trade", t.status.String())
	}
	if quantity == 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("must be greater than 0"))
	}

	switch t.direction {
	case Sell:
		if t.stock < quantity {
			return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 1, t.stock,
				errors.New("insufficient stock"))
		}
		t.stock -= quantity
		t.sales = saturatingAdd(t.sales, quantity)
	case Buy:
		t.stock = saturatingAdd(t.stock, quantity)
	}

	t.touch(at)
	t.RaiseDomainEvent(kernel.NewEvent(EventTraded, t.Key(), t.updatedAt,
		"trader", trader.String(), "quantity", strconv.FormatUint(quantity, 10)))
	return nil
}

func (t *Token) MarkDeleted(at kernel.Timestamp) {
	t.RaiseDomainEvent(kernel.NewEvent(EventDeleted, t.Key(), t.updatedAt.Max(at)))
}

func (t *Token) touch(at kernel.Timestamp) {
	t.updatedAt = t.updatedAt.Max(at)
}

func (t *Token) setCode(code kernel.BoundedID) error {
	if code.IsEmpty() {
		return errs.NewValueIsRequiredError("token code")
	}
	t.code = code
	return nil
}

func (t *Token) setPrice(price uint64) error {
	if price == 0 {
		return errPriceIsZero()
	}
	t.price = price
	return nil
}

func (t *Token) setDirection(direction Direction) error {
	if _, err := DirectionFromCode(direction.Code()); err != nil {
		return err
	}
	t.direction = direction
	return nil
}

func (t *Token) setCreator(creator kernel.AccountID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	t.creator = creator
	return nil
}

func errPriceIsZero() error {
	return errs.NewValueIsInvalidErrorWithCause("price", errors.New("must be greater than 0"))
}

func saturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}
