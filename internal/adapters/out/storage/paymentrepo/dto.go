// Package paymentrepo persists institution payment methods.
package paymentrepo

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
)

const Kind = "payment_method"

type MethodDTO struct {
	InstitutionID records.Text  `json:"institution_id"`
	WeChat        *records.Text `json:"wechat,omitempty"`
	Alipay        *records.Text `json:"alipay,omitempty"`
	Token         *records.Text `json:"token,omitempty"`
	Other         *records.Text `json:"other,omitempty"`
	Creator       records.Text  `json:"creator"`
	CreatedAt     uint64        `json:"created_at"`
	UpdatedAt     uint64        `json:"updated_at"`
}

func raw(id *kernel.BoundedID) *records.Text {
	if id == nil {
		return nil
	}
	t := records.Text(id.String())
	return &t
}

func fromDomain(m *payment.Method) MethodDTO {
	c := m.Channels()
	return MethodDTO{
		InstitutionID: records.Text(m.InstitutionID().String()),
		WeChat:        raw(c.WeChat),
		Alipay:        raw(c.Alipay),
		Token:         raw(c.Token),
		Other:         raw(c.Other),
		Creator:       records.Text(m.Creator().String()),
		CreatedAt:     uint64(m.CreatedAt()),
		UpdatedAt:     uint64(m.UpdatedAt()),
	}
}

func toDomain(dto MethodDTO) (*payment.Method, error) {
	id, idErr := kernel.NewCode("institution id", string(dto.InstitutionID))
	wechat, wechatErr := kernel.NewOptionalText("wechat", dto.WeChat.StringPtr(), kernel.MaxPaymentLength)
	alipay, alipayErr := kernel.NewOptionalText("alipay", dto.Alipay.StringPtr(), kernel.MaxPaymentLength)
	tok, tokErr := kernel.NewOptionalText("token", dto.Token.StringPtr(), kernel.MaxPaymentLength)
	other, otherErr := kernel.NewOptionalText("other", dto.Other.StringPtr(), kernel.MaxPaymentLength)
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(idErr, wechatErr, alipayErr, tokErr, otherErr, creatorErr); err != nil {
		return nil, err
	}

	channels := payment.Channels{WeChat: wechat, Alipay: alipay, Token: tok, Other: other}
	return payment.RestoreMethod(id, channels, creator,
		kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}
