package commands

import (
	"errors"
	"fmt"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrUpdateOrderExpressInfoCommandIsNotConstructed = errors.New(
		"UpdateOrderExpressInfoCommand must be created via NewUpdateOrderExpressInfoCommand constructor",
	)
	ErrOrderCommandIsNotConstructed = errors.New(
		"OrderCommand must be created via NewOrderCommand constructor",
	)
)

// OrderLine is one requested order item as it arrives from a caller.
type OrderLine struct {
	ProductCode  string
	Quantity     uint32
	PricePerUnit uint32
	Weight       uint32
}

// OrderContact holds the optional buyer contact details as raw text.
type OrderContact struct {
	Phone   string
	Email   string
	Address string
}

// CreateOrderCommand places a Pending order with up to order.MaxOrderItems lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("alice", "O1", "M1", "I1",
//	    []OrderLine{{ProductCode: "P1", Quantity: 2, PricePerUnit: 500, Weight: 30}},
//	    100, OrderContact{Phone: "555-0100"})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	caller          kernel.AccountID
	code            kernel.BoundedID
	memberCode      kernel.BoundedID
	institutionCode kernel.BoundedID
	items           []order.Item
	freight         uint32
	contact         order.Contact

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	caller, code, memberCode, institutionCode string,
	lines []OrderLine,
	freight uint32,
	contact OrderContact,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		freight: freight,
		guard:   guard.NewConstructorGuard(),
	}

	var callerErr, codeErr, memberErr, institutionErr, contactErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)
	cmd.memberCode, memberErr = kernel.NewCode("member code", memberCode)
	cmd.institutionCode, institutionErr = kernel.NewCode("institution code", institutionCode)
	cmd.contact, contactErr = order.NewContact(contact.Phone, contact.Email, contact.Address)

	if err := errors.Join(
		callerErr,
		codeErr,
		memberErr,
		institutionErr,
		contactErr,
		cmd.setItems(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Caller() kernel.AccountID          { return c.caller }
func (c CreateOrderCommand) Code() kernel.BoundedID            { return c.code }
func (c CreateOrderCommand) MemberCode() kernel.BoundedID      { return c.memberCode }
func (c CreateOrderCommand) InstitutionCode() kernel.BoundedID { return c.institutionCode }
func (c CreateOrderCommand) Freight() uint32                   { return c.freight }
func (c CreateOrderCommand) Contact() order.Contact            { return c.contact }

// Items returns a copy of the decoded order lines.
func (c CreateOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

// setItems decodes every line; the count limit is enforced by the aggregate.
func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	items := make([]order.Item, 0, len(lines))
	var errList []error
	for i, line := range lines {
		productCode, err := kernel.NewRequiredCode("product code", line.ProductCode)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		item, err := order.NewItem(productCode, line.Quantity, line.PricePerUnit, line.Weight)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}

// UpdateOrderStatusCommand moves an order to the status with the given wire code.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	code   kernel.BoundedID
	status order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(caller, code string, status uint8) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{guard: guard.NewConstructorGuard()}

	var callerErr, codeErr, statusErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)
	cmd.status, statusErr = order.StatusFromCode(status)

	if err := errors.Join(callerErr, codeErr, statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Caller() kernel.AccountID { return c.caller }
func (c UpdateOrderStatusCommand) Code() kernel.BoundedID   { return c.code }
func (c UpdateOrderStatusCommand) Status() order.Status     { return c.status }

// UpdateOrderExpressInfoCommand records the carrier and tracking number.
type UpdateOrderExpressInfoCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.AccountID
	code    kernel.BoundedID
	company kernel.BoundedID
	number  kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewUpdateOrderExpressInfoCommand(caller, code, company, number string) (UpdateOrderExpressInfoCommand, error) {
	cmd := UpdateOrderExpressInfoCommand{guard: guard.NewConstructorGuard()}

	var callerErr, codeErr, companyErr, numberErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)
	cmd.company, companyErr = kernel.NewBoundedID("express company", company, kernel.MaxExpressInfoLength)
	cmd.number, numberErr = kernel.NewBoundedID("express number", number, kernel.MaxExpressInfoLength)

	if err := errors.Join(callerErr, codeErr, companyErr, numberErr); err != nil {
		return UpdateOrderExpressInfoCommand{}, err
	}
	return cmd, nil
}

func (c UpdateOrderExpressInfoCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderExpressInfoCommandIsNotConstructed)
}

func (c UpdateOrderExpressInfoCommand) Caller() kernel.AccountID  { return c.caller }
func (c UpdateOrderExpressInfoCommand) Code() kernel.BoundedID    { return c.code }
func (c UpdateOrderExpressInfoCommand) Company() kernel.BoundedID { return c.company }
func (c UpdateOrderExpressInfoCommand) Number() kernel.BoundedID  { return c.number }

// OrderCommand addresses one order by code for cancel and delete.
type OrderCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	code   kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewOrderCommand(caller, code string) (OrderCommand, error) {
	cmd := OrderCommand{guard: guard.NewConstructorGuard()}

	var callerErr, codeErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)

	if err := errors.Join(callerErr, codeErr); err != nil {
		return OrderCommand{}, err
	}
	return cmd, nil
}

func (c OrderCommand) Validate() error {
	return c.guard.Validate(ErrOrderCommandIsNotConstructed)
}

func (c OrderCommand) Caller() kernel.AccountID { return c.caller }
func (c OrderCommand) Code() kernel.BoundedID   { return c.code }
