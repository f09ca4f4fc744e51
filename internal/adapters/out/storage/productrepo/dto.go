// Package productrepo persists products keyed by (product code, institution
// code) with their institution and status indexes.
package productrepo

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
)

const Kind = "product"

type ProductDTO struct {
	Code             records.Text   `json:"code"`
	InstitutionCode  records.Text   `json:"institution_code"`
	Name             records.Text   `json:"name"`
	Category         records.Text   `json:"category"`
	Brand            records.Text   `json:"brand"`
	AuthorizedGroups []records.Text `json:"authorized_groups"`
	OriginalPrice    uint64         `json:"original_price"`
	CurrentPrice     uint64         `json:"current_price"`
	Description      records.Text   `json:"description"`
	MainImage        records.Text   `json:"main_image"`
	DetailImages     []records.Text `json:"detail_images"`
	Weight           uint32         `json:"weight"`
	ProfitRatio      uint32         `json:"profit_ratio"`
	Stock            uint64         `json:"stock"`
	Sales            uint64         `json:"sales"`
	Status           uint8          `json:"status"`
	Creator          records.Text   `json:"creator"`
	CreatedAt        uint64         `json:"created_at"`
	UpdatedAt        uint64         `json:"updated_at"`
}

func (dto ProductDTO) key() string {
	return kernel.CompositeKeyOf(string(dto.Code), string(dto.InstitutionCode))
}

func statusBucket(dto ProductDTO) string {
	return strconv.Itoa(int(dto.Status))
}

func texts(ids []kernel.BoundedID) []records.Text {
	out := make([]records.Text, len(ids))
	for i, id := range ids {
		out[i] = records.Text(id.String())
	}
	return out
}

func bounded(param string, raw []records.Text, maxLen int) ([]kernel.BoundedID, error) {
	out := make([]kernel.BoundedID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.NewBoundedID(param, string(s), maxLen)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func fromDomain(p *product.Product) ProductDTO {
	d := p.Details()
	return ProductDTO{
		Code:             records.Text(p.Code().String()),
		InstitutionCode:  records.Text(p.InstitutionCode().String()),
		Name:             records.Text(d.Name.String()),
		Category:         records.Text(d.Category.String()),
		Brand:            records.Text(d.Brand.String()),
		AuthorizedGroups: texts(d.AuthorizedGroups),
		OriginalPrice:    d.OriginalPrice,
		CurrentPrice:     d.CurrentPrice,
		Description:      records.Text(d.Description.String()),
		MainImage:        records.Text(d.MainImage.String()),
		DetailImages:     texts(d.DetailImages),
		Weight:           d.Weight,
		ProfitRatio:      d.ProfitRatio,
		Stock:            p.Stock(),
		Sales:            p.Sales(),
		Status:           p.Status().Code(),
		Creator:          records.Text(p.Creator().String()),
		CreatedAt:        uint64(p.CreatedAt()),
		UpdatedAt:        uint64(p.UpdatedAt()),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	code, codeErr := kernel.NewCode("product code", string(dto.Code))
	institution, institutionErr := kernel.NewCode("institution code", string(dto.InstitutionCode))
	name, nameErr := kernel.NewBoundedID("name", string(dto.Name), kernel.MaxNameLength)
	category, categoryErr := kernel.NewBoundedID("category", string(dto.Category), kernel.MaxNameLength)
	brand, brandErr := kernel.NewBoundedID("brand", string(dto.Brand), kernel.MaxNameLength)
	groups, groupsErr := bounded("authorized group", dto.AuthorizedGroups, kernel.MaxCodeLength)
	description, descriptionErr := kernel.NewBoundedID("description", string(dto.Description), kernel.MaxTextLength)
	mainImage, mainImageErr := kernel.NewBoundedID("main image", string(dto.MainImage), kernel.MaxURLLength)
	images, imagesErr := bounded("detail image", dto.DetailImages, kernel.MaxURLLength)
	status, statusErr := kernel.AvailabilityFromCode(dto.Status)
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(codeErr, institutionErr, nameErr, categoryErr, brandErr, groupsErr,
		descriptionErr, mainImageErr, imagesErr, statusErr, creatorErr); err != nil {
		return nil, err
	}

	details := product.Details{
		Name:             name,
		Category:         category,
		Brand:            brand,
		AuthorizedGroups: groups,
		OriginalPrice:    dto.OriginalPrice,
		CurrentPrice:     dto.CurrentPrice,
		Description:      description,
		MainImage:        mainImage,
		DetailImages:     images,
		Weight:           dto.Weight,
		ProfitRatio:      dto.ProfitRatio,
	}
	return product.RestoreProduct(code, institution, details, dto.Stock, dto.Sales, status, creator,
		kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}
