// Package c2corderrepo persists c2c orders in the record store and keeps their
// member, institution and status indexes.
package c2corderrepo

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

// Kind names the primary namespace of c2c orders.
const Kind = "c2c_order"

// OrderDTO is the stored form of an order.
type OrderDTO struct {
	Code              records.Text `json:"code"`
	MemberCode        records.Text `json:"member_code"`
	InstitutionCode   records.Text `json:"institution_code"`
	Status            uint8        `json:"status"`
	Direction         uint8        `json:"direction"`
	TransactionAmount uint64       `json:"transaction_amount"`
	TotalAmount       uint64       `json:"total_amount"`
	Creator           records.Text `json:"creator"`
	CreatedAt         uint64       `json:"created_at"`
	UpdatedAt         uint64       `json:"updated_at"`
}

func statusBucket(dto OrderDTO) string {
	return strconv.Itoa(int(dto.Status))
}

func fromDomain(o *c2corder.Order) OrderDTO {
	return OrderDTO{
		Code:              records.Text(o.Code().String()),
		MemberCode:        records.Text(o.MemberCode().String()),
		InstitutionCode:   records.Text(o.InstitutionCode().String()),
		Status:            o.Status().Code(),
		Direction:         o.Direction().Code(),
		TransactionAmount: o.TransactionAmount(),
		TotalAmount:       o.TotalAmount(),
		Creator:           records.Text(o.Creator().String()),
		CreatedAt:         uint64(o.CreatedAt()),
		UpdatedAt:         uint64(o.UpdatedAt()),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, decoding the enum codes.
func toDomain(dto OrderDTO) (*c2corder.Order, error) {
	code, codeErr := kernel.NewCode("order code", string(dto.Code))
	member, memberErr := kernel.NewCode("member code", string(dto.MemberCode))
	institution, institutionErr := kernel.NewCode("institution code", string(dto.InstitutionCode))
	status, statusErr := c2corder.StatusFromCode(dto.Status)
	direction, directionErr := c2corder.DirectionFromCode(dto.Direction)
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(codeErr, memberErr, institutionErr, statusErr, directionErr, creatorErr); err != nil {
		return nil, err
	}

	return c2corder.RestoreOrder(code, member, institution, status, direction,
		dto.TransactionAmount, dto.TotalAmount, creator,
		kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}
