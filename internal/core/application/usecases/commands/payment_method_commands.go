package commands

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrSetPaymentMethodCommandIsNotConstructed = errors.New(
		"SetPaymentMethodCommand must be created via NewSetPaymentMethodCommand constructor",
	)
	ErrUpdatePaymentFieldCommandIsNotConstructed = errors.New(
		"UpdatePaymentFieldCommand must be created via NewUpdatePaymentFieldCommand constructor",
	)
	ErrPaymentMethodCommandIsNotConstructed = errors.New(
		"PaymentMethodCommand must be created via NewPaymentMethodCommand constructor",
	)
)

// PaymentChannels holds the raw payment handles; nil means not offered.
type PaymentChannels struct {
	WeChat *string
	Alipay *string
	Token  *string
	Other  *string
}

// SetPaymentMethodCommand creates the payment method of an institution or
// replaces all of its channels.
type SetPaymentMethodCommand struct { //nolint:recvcheck //using for validation
	caller        kernel.AccountID
	institutionID kernel.BoundedID
	channels      payment.Channels

	guard guard.ConstructorGuard
}

func NewSetPaymentMethodCommand(caller, institutionID string, raw PaymentChannels) (SetPaymentMethodCommand, error) {
	cmd := SetPaymentMethodCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr, wechatErr, alipayErr, tokenErr, otherErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.institutionID, idErr = kernel.NewRequiredCode("institution id", institutionID)
	ch := &cmd.channels
	ch.WeChat, wechatErr = kernel.NewOptionalText("wechat", raw.WeChat, kernel.MaxPaymentLength)
	ch.Alipay, alipayErr = kernel.NewOptionalText("alipay", raw.Alipay, kernel.MaxPaymentLength)
	ch.Token, tokenErr = kernel.NewOptionalText("token", raw.Token, kernel.MaxPaymentLength)
	ch.Other, otherErr = kernel.NewOptionalText("other", raw.Other, kernel.MaxPaymentLength)

	if err := errors.Join(callerErr, idErr, wechatErr, alipayErr, tokenErr, otherErr); err != nil {
		return SetPaymentMethodCommand{}, err
	}
	return cmd, nil
}

func (c SetPaymentMethodCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentMethodCommandIsNotConstructed)
}

func (c SetPaymentMethodCommand) Caller() kernel.AccountID        { return c.caller }
func (c SetPaymentMethodCommand) InstitutionID() kernel.BoundedID { return c.institutionID }
func (c SetPaymentMethodCommand) Channels() payment.Channels      { return c.channels }

// UpdatePaymentFieldCommand sets or clears one channel selected by field code.
type UpdatePaymentFieldCommand struct { //nolint:recvcheck //using for validation
	caller        kernel.AccountID
	institutionID kernel.BoundedID
	field         payment.Field
	value         *kernel.BoundedID

	guard guard.ConstructorGuard
}

// NewUpdatePaymentFieldCommand fails with a ValueIsInvalidError for field
// codes above 3.
func NewUpdatePaymentFieldCommand(
	caller, institutionID string,
	field uint8,
	value *string,
) (UpdatePaymentFieldCommand, error) {
	cmd := UpdatePaymentFieldCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr, fieldErr, valueErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.institutionID, idErr = kernel.NewRequiredCode("institution id", institutionID)
	cmd.field, fieldErr = payment.FieldFromCode(field)
	cmd.value, valueErr = kernel.NewOptionalText("payment value", value, kernel.MaxPaymentLength)

	if err := errors.Join(callerErr, idErr, fieldErr, valueErr); err != nil {
		return UpdatePaymentFieldCommand{}, err
	}
	return cmd, nil
}

func (c UpdatePaymentFieldCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentFieldCommandIsNotConstructed)
}

func (c UpdatePaymentFieldCommand) Caller() kernel.AccountID        { return c.caller }
func (c UpdatePaymentFieldCommand) InstitutionID() kernel.BoundedID { return c.institutionID }
func (c UpdatePaymentFieldCommand) Field() payment.Field            { return c.field }
func (c UpdatePaymentFieldCommand) Value() *kernel.BoundedID        { return c.value }

type PaymentMethodCommand struct { //nolint:recvcheck //using for validation
	caller        kernel.AccountID
	institutionID kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewPaymentMethodCommand(caller, institutionID string) (PaymentMethodCommand, error) {
	cmd := PaymentMethodCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.institutionID, idErr = kernel.NewRequiredCode("institution id", institutionID)

	if err := errors.Join(callerErr, idErr); err != nil {
		return PaymentMethodCommand{}, err
	}
	return cmd, nil
}

func (c PaymentMethodCommand) Validate() error {
	return c.guard.Validate(ErrPaymentMethodCommandIsNotConstructed)
}

func (c PaymentMethodCommand) Caller() kernel.AccountID        { return c.caller }
func (c PaymentMethodCommand) InstitutionID() kernel.BoundedID { return c.institutionID }
