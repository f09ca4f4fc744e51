// Package orderrepo provides the stored form of orders and the repository that
// keeps their member, institution and status indexes.
package orderrepo

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
)

const Kind = "order"

// OrderDTO is the stored form of an order. Totals are not stored; RestoreOrder
// derives them from the items.
type OrderDTO struct {
	Code            records.Text `json:"code"`
	MemberCode      records.Text `json:"member_code"`
	InstitutionCode records.Text `json:"institution_code"`
	Status          uint8        `json:"status"`
	Items           []ItemDTO    `json:"items"`
	Freight         uint32       `json:"freight"`
	Contact         ContactDTO   `json:"contact"`
	ExpressCompany  records.Text `json:"express_company,omitempty"`
	ExpressNumber   records.Text `json:"express_number,omitempty"`
	Creator         records.Text `json:"creator"`
	CreatedAt       uint64       `json:"created_at"`
	UpdatedAt       uint64       `json:"updated_at"`
}

type ItemDTO struct {
	ProductCode  records.Text `json:"product_code"`
	Quantity     uint32       `json:"quantity"`
	PricePerUnit uint32       `json:"price_per_unit"`
	Weight       uint32       `json:"weight"`
}

type ContactDTO struct {
	Phone   records.Text `json:"phone,omitempty"`
	Email   records.Text `json:"email,omitempty"`
	Address records.Text `json:"address,omitempty"`
}

func statusBucket(dto OrderDTO) string {
	return strconv.Itoa(int(dto.Status))
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			ProductCode:  records.Text(item.ProductCode().String()),
			Quantity:     item.Quantity(),
			PricePerUnit: item.PricePerUnit(),
			Weight:       item.Weight(),
		})
	}

	return OrderDTO{
		Code:            records.Text(o.Code().String()),
		MemberCode:      records.Text(o.MemberCode().String()),
		InstitutionCode: records.Text(o.InstitutionCode().String()),
		Status:          o.Status().Code(),
		Items:           items,
		Freight:         o.Freight(),
		Contact: ContactDTO{
			Phone:   records.Text(o.Contact().Phone().String()),
			Email:   records.Text(o.Contact().Email().String()),
			Address: records.Text(o.Contact().Address().String()),
		},
		ExpressCompany: records.Text(o.ExpressCompany().String()),
		ExpressNumber:  records.Text(o.ExpressNumber().String()),
		Creator:        records.Text(o.Creator().String()),
		CreatedAt:      uint64(o.CreatedAt()),
		UpdatedAt:      uint64(o.UpdatedAt()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	code, codeErr := kernel.NewCode("order code", string(dto.Code))
	member, memberErr := kernel.NewCode("member code", string(dto.MemberCode))
	institution, institutionErr := kernel.NewCode("institution code", string(dto.InstitutionCode))
	status, statusErr := order.StatusFromCode(dto.Status)
	contact, contactErr := order.NewContact(string(dto.Contact.Phone), string(dto.Contact.Email), string(dto.Contact.Address))
	company, companyErr := kernel.NewBoundedID("express company", string(dto.ExpressCompany), kernel.MaxExpressInfoLength)
	number, numberErr := kernel.NewBoundedID("express number", string(dto.ExpressNumber), kernel.MaxExpressInfoLength)
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(codeErr, memberErr, institutionErr, statusErr, contactErr,
		companyErr, numberErr, creatorErr); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		productCode, err := kernel.NewCode("product code", string(i.ProductCode))
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productCode, i.Quantity, i.PricePerUnit, i.Weight)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(code, member, institution, status, items, dto.Freight, contact,
		company, number, creator, kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}
