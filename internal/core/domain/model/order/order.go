package order

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Event names raised by Order.
const (
	EventCreated            = "order.created"
	EventStatusUpdated      = "order.status_updated"
	EventExpressInfoUpdated = "order.express_info_updated"
	EventCancelled          = "order.cancelled"
	EventDeleted            = "order.deleted"
)

// Order represents a marketplace order placed by a member with an institution.
//
// Order follows these invariants:
//   - Must have a non-empty order code
//   - Must have between 1 and MaxOrderItems items
//   - Total amount is the sum of item subtotals plus freight
//   - Total weight is the sum of item weights times quantities
//   - Status transitions follow the order transition table
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	kernel.AggregateRoot

	// code is the unique key of the order
	code kernel.BoundedID

	// memberCode groups orders by buyer
	memberCode kernel.BoundedID

	// institutionCode groups orders by seller
	institutionCode kernel.BoundedID

	// status represents the current state in the order lifecycle
	status Status

	items   []Item
	freight uint32
	contact Contact

	// totalAmount and totalWeight are derived from items and freight at creation
	totalAmount uint32
	totalWeight uint32

	expressCompany kernel.BoundedID
	expressNumber  kernel.BoundedID

	creator   kernel.AccountID
	createdAt kernel.Timestamp
	updatedAt kernel.Timestamp

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a Pending order and raises EventCreated.
//
// Parameters:
//   - code: unique order key (must be non-empty)
//   - memberCode, institutionCode: grouping keys for the member and institution indexes
//   - items: order lines (1..MaxOrderItems)
//   - freight: shipping fee added to the items total
//   - contact: optional buyer contact details
//   - creator: account placing the order
//   - at: logical time of creation
//
// Example:
//
//	item, _ := order.NewItem(productCode, 2, 500, 30)
//	o, err := order.NewOrder(code, member, institution, []order.Item{item}, 100, order.Contact{}, alice, 12)
//	if err != nil {
//	    // Handle validation error
//	}
//	// o.TotalAmount() == 1100, o.TotalWeight() == 60
func NewOrder(
	code, memberCode, institutionCode kernel.BoundedID,
	items []Item,
	freight uint32,
	contact Contact,
	creator kernel.AccountID,
	at kernel.Timestamp,
) (*Order, error) {
	o := &Order{
		memberCode:      memberCode,
		institutionCode: institutionCode,
		status:          Pending,
		freight:         freight,
		contact:         contact,
		createdAt:       at,
		updatedAt:       at,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setCode(code),
		o.setItems(items),
		o.setCreator(creator),
	); err != nil {
		return nil, err
	}

	o.RaiseDomainEvent(kernel.NewEvent(EventCreated, code.String(), at, "creator", creator.String()))
	return o, nil
}

// RestoreOrder rebuilds a persisted order. Totals are recomputed from items
// and freight; no events are raised.
func RestoreOrder(
	code, memberCode, institutionCode kernel.BoundedID,
	status Status,
	items []Item,
	freight uint32,
	contact Contact,
	expressCompany, expressNumber kernel.BoundedID,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Order, error) {
	o := &Order{
		memberCode:      memberCode,
		institutionCode: institutionCode,
		freight:         freight,
		contact:         contact,
		expressCompany:  expressCompany,
		expressNumber:   expressNumber,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setCode(code),
		o.setStatus(status),
		o.setItems(items),
		o.setCreator(creator),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// Code returns the order's unique key.
func (o *Order) Code() kernel.BoundedID {
	return o.code
}

func (o *Order) MemberCode() kernel.BoundedID {
	return o.memberCode
}

func (o *Order) InstitutionCode() kernel.BoundedID {
	return o.institutionCode
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Freight() uint32 {
	return o.freight
}

func (o *Order) Contact() Contact {
	return o.contact
}

// TotalAmount is the sum of item subtotals plus freight, saturating.
func (o *Order) TotalAmount() uint32 {
	return o.totalAmount
}

// TotalWeight is the sum of item weights, saturating.
func (o *Order) TotalWeight() uint32 {
	return o.totalWeight
}

func (o *Order) ExpressCompany() kernel.BoundedID {
	return o.expressCompany
}

func (o *Order) ExpressNumber() kernel.BoundedID {
	return o.expressNumber
}

func (o *Order) Creator() kernel.AccountID {
	return o.creator
}

func (o *Order) CreatedAt() kernel.Timestamp {
	return o.createdAt
}

func (o *Order) UpdatedAt() kernel.Timestamp {
	return o.updatedAt
}

// UpdateStatus moves the order along the transition table and raises
// EventStatusUpdated with the new status code.
//
// Returns:
//   - nil on a listed transition
//   - StatusIsInvalidError for an unknown status
//   - TransitionIsInvalidError for an unlisted edge
func (o *Order) UpdateStatus(status Status, at kernel.Timestamp) error {
	newStatus, err := o.status.Transition(status)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(at)
	o.RaiseDomainEvent(kernel.NewEvent(EventStatusUpdated, o.code.String(), o.updatedAt,
		"status", strconv.Itoa(int(newStatus.Code()))))
	return nil
}

// UpdateExpressInfo records the carrier and tracking number. It does not
// change the status.
func (o *Order) UpdateExpressInfo(company, number kernel.BoundedID, at kernel.Timestamp) error {
	if company.IsEmpty() {
		return errs.NewValueIsRequiredError("express company")
	}
	if number.IsEmpty() {
		return errs.NewValueIsRequiredError("express number")
	}

	o.expressCompany = company
	o.expressNumber = number
	o.touch(at)
	o.RaiseDomainEvent(kernel.NewEvent(EventExpressInfoUpdated, o.code.String(), o.updatedAt,
		"company", company.String(), "number", number.String()))
	return nil
}

// Cancel marks a Pending or Paid order as Cancelled.
func (o *Order) Cancel(at kernel.Timestamp) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(at)
	o.RaiseDomainEvent(kernel.NewEvent(EventCancelled, o.code.String(), o.updatedAt))
	return nil
}

// MarkDeleted raises EventDeleted. The repository removes the record.
func (o *Order) MarkDeleted(at kernel.Timestamp) {
	o.RaiseDomainEvent(kernel.NewEvent(EventDeleted, o.code.String(), o.updatedAt.Max(at)))
}

func (o *Order) touch(at kernel.Timestamp) {
	o.updatedAt = o.updatedAt.Max(at)
}

func (o *Order) setCode(code kernel.BoundedID) error {
	if code.IsEmpty() {
		return errs.NewValueIsRequiredError("order code")
	}
	o.code = code
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setItems validates the lines and derives the totals.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if len(items) > MaxOrderItems {
		return errs.NewValueIsOutOfRangeErrorWithCause("items", len(items), 1, MaxOrderItems,
			errors.New("too many order items"))
	}

	amount := o.freight
	var weight uint32
	for _, item := range items {
		amount = saturatingAdd(amount, item.Subtotal())
		weight = saturatingAdd(weight, item.TotalWeight())
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalAmount = amount
	o.totalWeight = weight
	return nil
}

func (o *Order) setCreator(creator kernel.AccountID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	o.creator = creator
	return nil
}
