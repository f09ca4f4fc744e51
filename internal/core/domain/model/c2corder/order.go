package c2corder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var ErrOrderIsNotConstructed = errors.New("c2c Order must be created via NewOrder or RestoreOrder")

// Event names raised by Order.
const (
	EventCreated       = "c2c_order.created"
	EventStatusUpdated = "c2c_order.status_updated"
	EventCancelled     = "c2c_order.cancelled"
	EventCompleted     = "c2c_order.completed"
	EventNotarizing    = "c2c_order.notarizing"
	EventDeleted       = "c2c_order.deleted"
)

// Order is the aggregate root of a c2c trade between a member and an
// institution.
//
// Invariants:
//   - code is non-empty and never changes
//   - transaction amount is positive and total amount is not below it
//   - status only changes along the edges of the c2c transition table
//   - updatedAt never decreases
type Order struct {
	kernel.AggregateRoot

	code            kernel.BoundedID
	memberCode      kernel.BoundedID
	institutionCode kernel.BoundedID

	status    Status
	direction Direction

	transactionAmount uint64
	totalAmount       uint64

	creator   kernel.AccountID
	createdAt kernel.Timestamp
	updatedAt kernel.Timestamp

	isConstructed bool
}

// NewOrder creates a Pending order and raises EventCreated.
func NewOrder(
	code, memberCode, institutionCode kernel.BoundedID,
	direction Direction,
	transactionAmount, totalAmount uint64,
	creator kernel.AccountID,
	at kernel.Timestamp,
) (*Order, error) {
	o := &Order{
		memberCode:      memberCode,
		institutionCode: institutionCode,
		status:          Pending,
		createdAt:       at,
		updatedAt:       at,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setCode(code),
		o.setDirection(direction),
		o.setAmounts(transactionAmount, totalAmount),
		o.setCreator(creator),
	); err != nil {
		return nil, err
	}

	o.RaiseDomainEvent(kernel.NewEvent(EventCreated, code.String(), at, "creator", creator.String()))
	return o, nil
}

// RestoreOrder rebuilds a persisted order without raising events.
func RestoreOrder(
	code, memberCode, institutionCode kernel.BoundedID,
	status Status,
	direction Direction,
	transactionAmount, totalAmount uint64,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Order, error) {
	o := &Order{
		memberCode:      memberCode,
		institutionCode: institutionCode,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setCode(code),
		o.setStatus(status),
		o.setDirection(direction),
		o.setAmounts(transactionAmount, totalAmount),
		o.setCreator(creator),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate rejects orders that were not built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) Code() kernel.BoundedID            { return o.code }
func (o *Order) MemberCode() kernel.BoundedID      { return o.memberCode }
func (o *Order) InstitutionCode() kernel.BoundedID { return o.institutionCode }
func (o *Order) Status() Status                    { return o.status }
func (o *Order) Direction() Direction              { return o.direction }
func (o *Order) TransactionAmount() uint64         { return o.transactionAmount }
func (o *Order) TotalAmount() uint64               { return o.totalAmount }
func (o *Order) Creator() kernel.AccountID         { return o.creator }
func (o *Order) CreatedAt() kernel.Timestamp       { return o.createdAt }
func (o *Order) UpdatedAt() kernel.Timestamp       { return o.updatedAt }

// UpdateStatus moves the order to status along the transition table.
//
// Besides EventStatusUpdated, moving to Completed raises EventCompleted and
// moving to Notarizing raises EventNotarizing.
func (o *Order) UpdateStatus(status Status, at kernel.Timestamp) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := transitions.Validate(o.status, status); err != nil {
		return err
	}

	o.status = status
	o.touch(at)

	key := o.code.String()
	o.RaiseDomainEvent(kernel.NewEvent(EventStatusUpdated, key, o.updatedAt,
		"status", strconv.Itoa(int(status.Code()))))
	switch status {
	case Completed:
		o.RaiseDomainEvent(kernel.NewEvent(EventCompleted, key, o.updatedAt))
	case Notarizing:
		o.RaiseDomainEvent(kernel.NewEvent(EventNotarizing, key, o.updatedAt))
	}
	return nil
}

// Cancel is allowed from Pending and Paid only. Notarizing orders are cancelled
// through UpdateStatus by the notary.
func (o *Order) Cancel(at kernel.Timestamp) error {
	if o.status != Pending && o.status != Paid {
		return errs.NewTransitionIsInvalidError(o.status.String(), Cancelled.String())
	}

	o.status = Cancelled
	o.touch(at)
	o.RaiseDomainEvent(kernel.NewEvent(EventCancelled, o.code.String(), o.updatedAt))
	return nil
}

// Complete is allowed from Delivered and Notarizing only.
func (o *Order) Complete(at kernel.Timestamp) error {
	if o.status != Delivered && o.status != Notarizing {
		return errs.NewTransitionIsInvalidError(o.status.String(), Completed.String())
	}

	o.status = Completed
	o.touch(at)
	o.RaiseDomainEvent(kernel.NewEvent(EventCompleted, o.code.String(), o.updatedAt))
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

func (o *Order) setDirection(direction Direction) error {
	if _, err := DirectionFromCode(direction.Code()); err != nil {
		return err
	}
	o.direction = direction
	return nil
}

func (o *Order) setAmounts(transactionAmount, totalAmount uint64) error {
	if transactionAmount == 0 {
		return errs.NewValueIsInvalidErrorWithCause("transaction amount", errors.New("must be greater than 0"))
	}
	if totalAmount < transactionAmount {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("%d is less than transaction amount %d", totalAmount, transactionAmount))
	}
	o.transactionAmount = transactionAmount
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setCreator(creator kernel.AccountID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	o.creator = creator
	return nil
}
