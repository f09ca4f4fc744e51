// Package freightrepo persists freight templates keyed by area.
package freightrepo

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

const Kind = "freight_template"

type TemplateDTO struct {
	Area                records.Text `json:"area"`
	FirstWeight         uint32       `json:"first_weight"`
	FirstWeightFee      uint32       `json:"first_weight_fee"`
	AdditionalWeightFee uint32       `json:"additional_weight_fee"`
	Creator             records.Text `json:"creator"`
	CreatedAt           uint64       `json:"created_at"`
	UpdatedAt           uint64       `json:"updated_at"`
}

func fromDomain(t *freight.Template) TemplateDTO {
	fees := t.Fees()
	return TemplateDTO{
		Area:                records.Text(t.Area().String()),
		FirstWeight:         fees.FirstWeight,
		FirstWeightFee:      fees.FirstWeightFee,
		AdditionalWeightFee: fees.AdditionalWeightFee,
		Creator:             records.Text(t.Creator().String()),
		CreatedAt:           uint64(t.CreatedAt()),
		UpdatedAt:           uint64(t.UpdatedAt()),
	}
}

func toDomain(dto TemplateDTO) (*freight.Template, error) {
	area, areaErr := kernel.NewCode("area", string(dto.Area))
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(areaErr, creatorErr); err != nil {
		return nil, err
	}
	fees := freight.Fees{
		FirstWeight:         dto.FirstWeight,
		FirstWeightFee:      dto.FirstWeightFee,
		AdditionalWeightFee: dto.AdditionalWeightFee,
	}
	return freight.RestoreTemplate(area, fees, creator,
		kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}
