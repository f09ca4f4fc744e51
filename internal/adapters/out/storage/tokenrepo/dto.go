// Package tokenrepo persists tokens keyed by (token code, institution code).
package tokenrepo

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/token"
)

const Kind = "token"

type TokenDTO struct {
	Code            records.Text `json:"code"`
	InstitutionCode records.Text `json:"institution_code"`
	Name            records.Text `json:"name"`
	Category        records.Text `json:"category"`
	Price           uint64       `json:"price"`
	Direction       uint8        `json:"direction"`
	Stock           uint64       `json:"stock"`
	Sales           uint64       `json:"sales"`
	Status          uint8        `json:"status"`
	Creator         records.Text `json:"creator"`
	CreatedAt       uint64       `json:"created_at"`
	UpdatedAt       uint64       `json:"updated_at"`
}

func (dto TokenDTO) key() string {
	return kernel.CompositeKeyOf(string(dto.Code), string(dto.InstitutionCode))
}

func fromDomain(t *token.Token) TokenDTO {
	return TokenDTO{
		Code:            records.Text(t.Code().String()),
		InstitutionCode: records.Text(t.InstitutionCode().String()),
		Name:            records.Text(t.Name().String()),
		Category:        records.Text(t.Category().String()),
		Price:           t.Price(),
		Direction:       t.Direction().Code(),
		Stock:           t.Stock(),
		Sales:           t.Sales(),
		Status:          t.Status().Code(),
		Creator:         records.Text(t.Creator().String()),
		CreatedAt:       uint64(t.CreatedAt()),
		UpdatedAt:       uint64(t.UpdatedAt()),
	}
}

func toDomain(dto TokenDTO) (*token.Token, error) {
	code, codeErr := kernel.NewCode("token code", string(dto.Code))
	institution, institutionErr := kernel.NewCode("institution code", string(dto.InstitutionCode))
	name, nameErr := kernel.NewBoundedID("name", string(dto.Name), kernel.MaxNameLength)
	category, categoryErr := kernel.NewBoundedID("category", string(dto.Category), kernel.MaxNameLength)
	direction, directionErr := token.DirectionFromCode(dto.Direction)
	status, statusErr := kernel.AvailabilityFromCode(dto.Status)
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(codeErr, institutionErr, nameErr, categoryErr, directionErr,
		statusErr, creatorErr); err != nil {
		return nil, err
	}

	info := token.Info{
		Name:      name,
		Category:  category,
		Price:     dto.Price,
		Direction: direction,
		Stock:     dto.Stock,
	}
	return token.RestoreToken(code, institution, info, dto.Sales, status, creator,
		kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}

func statusBucket(dto TokenDTO) string {
	return strconv.Itoa(int(dto.Status))
}
