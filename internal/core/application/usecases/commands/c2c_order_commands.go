package commands

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrCreateC2COrderCommandIsNotConstructed = errors.New(
		"CreateC2COrderCommand must be created via NewCreateC2COrderCommand constructor",
	)
	ErrUpdateC2COrderStatusCommandIsNotConstructed = errors.New(
		"UpdateC2COrderStatusCommand must be created via NewUpdateC2COrderStatusCommand constructor",
	)
	ErrC2COrderCommandIsNotConstructed = errors.New(
		"C2COrderCommand must be created via its constructor",
	)
)

// CreateC2COrderCommand registers a new c2c order in the Pending status.
//
// Example:
//
//	cmd, err := NewCreateC2COrderCommand("alice", "O1", "M1", "I1", 1, 100, 150)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateC2COrderCommandHandler(uowFactory, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateC2COrderCommand struct { //nolint:recvcheck //using for validation
	caller            kernel.AccountID
	code              kernel.BoundedID
	memberCode        kernel.BoundedID
	institutionCode   kernel.BoundedID
	direction         c2corder.Direction
	transactionAmount uint64
	totalAmount       uint64

	guard guard.ConstructorGuard
}

// NewCreateC2COrderCommand decodes the direction code and bounds every
// identifier. Amount rules are enforced by the aggregate.
func NewCreateC2COrderCommand(
	caller, code, memberCode, institutionCode string,
	direction uint8,
	transactionAmount, totalAmount uint64,
) (CreateC2COrderCommand, error) {
	cmd := CreateC2COrderCommand{
		transactionAmount: transactionAmount,
		totalAmount:       totalAmount,
		guard:             guard.NewConstructorGuard(),
	}

	var callerErr, codeErr, memberErr, institutionErr, directionErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)
	cmd.memberCode, memberErr = kernel.NewCode("member code", memberCode)
	cmd.institutionCode, institutionErr = kernel.NewCode("institution code", institutionCode)
	cmd.direction, directionErr = c2corder.DirectionFromCode(direction)

	if err := errors.Join(callerErr, codeErr, memberErr, institutionErr, directionErr); err != nil {
		return CreateC2COrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateC2COrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateC2COrderCommandIsNotConstructed)
}

func (c CreateC2COrderCommand) Caller() kernel.AccountID          { return c.caller }
func (c CreateC2COrderCommand) Code() kernel.BoundedID            { return c.code }
func (c CreateC2COrderCommand) MemberCode() kernel.BoundedID      { return c.memberCode }
func (c CreateC2COrderCommand) InstitutionCode() kernel.BoundedID { return c.institutionCode }
func (c CreateC2COrderCommand) Direction() c2corder.Direction     { return c.direction }
func (c CreateC2COrderCommand) TransactionAmount() uint64         { return c.transactionAmount }
func (c CreateC2COrderCommand) TotalAmount() uint64               { return c.totalAmount }

// UpdateC2COrderStatusCommand moves an order to the status with the given
// wire code.
type UpdateC2COrderStatusCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	code   kernel.BoundedID
	status c2corder.Status

	guard guard.ConstructorGuard
}

// NewUpdateC2COrderStatusCommand fails with a StatusIsInvalidError for codes
// outside the c2c order statuses.
func NewUpdateC2COrderStatusCommand(caller, code string, status uint8) (UpdateC2COrderStatusCommand, error) {
	cmd := UpdateC2COrderStatusCommand{guard: guard.NewConstructorGuard()}

	var callerErr, codeErr, statusErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)
	cmd.status, statusErr = c2corder.StatusFromCode(status)

	if err := errors.Join(callerErr, codeErr, statusErr); err != nil {
		return UpdateC2COrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateC2COrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateC2COrderStatusCommandIsNotConstructed)
}

func (c UpdateC2COrderStatusCommand) Caller() kernel.AccountID { return c.caller }
func (c UpdateC2COrderStatusCommand) Code() kernel.BoundedID   { return c.code }
func (c UpdateC2COrderStatusCommand) Status() c2corder.Status  { return c.status }

// C2COrderCommand addresses one order by code. It is shared by cancel,
// complete and delete.
type C2COrderCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	code   kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewC2COrderCommand(caller, code string) (C2COrderCommand, error) {
	cmd := C2COrderCommand{guard: guard.NewConstructorGuard()}

	var callerErr, codeErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.code, codeErr = kernel.NewRequiredCode("order code", code)

	if err := errors.Join(callerErr, codeErr); err != nil {
		return C2COrderCommand{}, err
	}
	return cmd, nil
}

func (c C2COrderCommand) Validate() error {
	return c.guard.Validate(ErrC2COrderCommandIsNotConstructed)
}

func (c C2COrderCommand) Caller() kernel.AccountID { return c.caller }
func (c C2COrderCommand) Code() kernel.BoundedID   { return c.code }
