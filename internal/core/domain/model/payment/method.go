// Package payment models the payment channels an institution accepts.
package payment

import (
	"errors"
	"fmt"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var ErrMethodIsNotConstructed = errors.New("Method must be created via NewMethod or RestoreMethod")

const (
	EventCreated = "payment_method.created"
	EventUpdated = "payment_method.updated"
	EventDeleted = "payment_method.deleted"
)

// Field selects one channel of a Method. Values are wire codes.
type Field uint8

const (
	WeChat Field = iota
	Alipay
	Token
	Other
)

func FieldFromCode(code uint8) (Field, error) {
	if code > uint8(Other) {
		return 0, errs.NewValueIsInvalidErrorWithCause("payment field", fmt.Errorf("%d is not a known field", code))
	}
	return Field(code), nil
}

// Channels are the optional payment handles. Nil means the channel is not offered.
type Channels struct {
	WeChat *kernel.BoundedID
	Alipay *kernel.BoundedID
	Token  *kernel.BoundedID
	Other  *kernel.BoundedID
}

func (c Channels) isEmpty() bool {
	return c.WeChat == nil && c.Alipay == nil && c.Token == nil && c.Other == nil
}

func (c Channels) clone() Channels {
	cp := func(v *kernel.BoundedID) *kernel.BoundedID {
		if v == nil {
			return nil
		}
		x := *v
		return &x
	}
	return Channels{WeChat: cp(c.WeChat), Alipay: cp(c.Alipay), Token: cp(c.Token), Other: cp(c.Other)}
}

// Method is keyed by institution id.
type Method struct {
	kernel.AggregateRoot

	institutionID kernel.BoundedID
	channels      Channels
	creator       kernel.AccountID
	createdAt     kernel.Timestamp
	updatedAt     kernel.Timestamp

	isConstructed bool
}

// NewMethod requires at least one channel.
func NewMethod(institutionID kernel.BoundedID, channels Channels, creator kernel.AccountID, at kernel.Timestamp) (*Method, error) {
	m, err := RestoreMethod(institutionID, channels, creator, at, at)
	if err != nil {
		return nil, err
	}
	m.RaiseDomainEvent(kernel.NewEvent(EventCreated, institutionID.String(), at, "creator", creator.String()))
	return m, nil
}

func RestoreMethod(
	institutionID kernel.BoundedID,
	channels Channels,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Method, error) {
	if institutionID.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("institution id")
	}
	if channels.isEmpty() {
		return nil, errs.NewValueIsRequiredError("payment method")
	}
	if err := creator.Validate(); err != nil {
		return nil, err
	}
	return &Method{
		institutionID: institutionID,
		channels:      channels.clone(),
		creator:       creator,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (m *Method) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMethodIsNotConstructed
	}
	return nil
}

func (m *Method) InstitutionID() kernel.BoundedID { return m.institutionID }
func (m *Method) Channels() Channels              { return m.channels.clone() }
func (m *Method) Creator() kernel.AccountID       { return m.creator }
func (m *Method) CreatedAt() kernel.Timestamp     { return m.createdAt }
func (m *Method) UpdatedAt() kernel.Timestamp     { return m.updatedAt }

// Replace swaps every channel at once. At least one must remain.
func (m *Method) Replace(channels Channels, at kernel.Timestamp) error {
	if channels.isEmpty() {
		return errs.NewValueIsRequiredError("payment method")
	}
	m.channels = channels.clone()
	m.touched(at)
	return nil
}

// SetField sets or clears one channel. Clearing the last channel is rejected.
func (m *Method) SetField(field Field, value *kernel.BoundedID, at kernel.Timestamp) error {
	next := m.channels.clone()
	switch field {
	case WeChat:
		next.WeChat = value
	case Alipay:
		next.Alipay = value
	case Token:
		next.Token = value
	case Other:
		next.Other = value
	default:
		return errs.NewValueIsInvalidError("payment field")
	}
	return m.Replace(next, at)
}

func (m *Method) MarkDeleted(at kernel.Timestamp) {
	m.RaiseDomainEvent(kernel.NewEvent(EventDeleted, m.institutionID.String(), m.updatedAt.Max(at)))
}

func (m *Method) touched(at kernel.Timestamp) {
	m.updatedAt = m.updatedAt.Max(at)
	m.RaiseDomainEvent(kernel.NewEvent(EventUpdated, m.institutionID.String(), m.updatedAt))
}
