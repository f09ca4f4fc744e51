package queries

import (
	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/order"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/payment"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/product"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/token"
)

// Read models carry enumerations as wire codes next to their names.

type C2COrderView struct {
	Code              string `json:"code"`
	MemberCode        string `json:"member_code"`
	InstitutionCode   string `json:"institution_code"`
	Status            uint8  `json:"status"`
	StatusName        string `json:"status_name"`
	Direction         uint8  `json:"direction"`
	TransactionAmount uint64 `json:"transaction_amount"`
	TotalAmount       uint64 `json:"total_amount"`
	Creator           string `json:"creator"`
	CreatedAt         uint64 `json:"created_at"`
	UpdatedAt         uint64 `json:"updated_at"`
}

func newC2COrderView(o *c2corder.Order) C2COrderView {
	return C2COrderView{
		Code:              o.Code().String(),
		MemberCode:        o.MemberCode().String(),
		InstitutionCode:   o.InstitutionCode().String(),
		Status:            o.Status().Code(),
		StatusName:        o.Status().String(),
		Direction:         o.Direction().Code(),
		TransactionAmount: o.TransactionAmount(),
		TotalAmount:       o.TotalAmount(),
		Creator:           o.Creator().String(),
		CreatedAt:         uint64(o.CreatedAt()),
		UpdatedAt:         uint64(o.UpdatedAt()),
	}
}

type OrderItemView struct {
	ProductCode  string `json:"product_code"`
	Quantity     uint32 `json:"quantity"`
	PricePerUnit uint32 `json:"price_per_unit"`
	Weight       uint32 `json:"weight"`
}

type OrderView struct {
	Code            string          `json:"code"`
	MemberCode      string          `json:"member_code"`
	InstitutionCode string          `json:"institution_code"`
	Status          uint8           `json:"status"`
	StatusName      string          `json:"status_name"`
	Items           []OrderItemView `json:"items"`
	Freight         uint32          `json:"freight"`
	TotalAmount     uint32          `json:"total_amount"`
	TotalWeight     uint32          `json:"total_weight"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	ExpressCompany  string          `json:"express_company,omitempty"`
	ExpressNumber   string          `json:"express_number,omitempty"`
	Creator         string          `json:"creator"`
	CreatedAt       uint64          `json:"created_at"`
	UpdatedAt       uint64          `json:"updated_at"`
}

func newOrderView(o *order.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemView{
			ProductCode:  item.ProductCode().String(),
			Quantity:     item.Quantity(),
			PricePerUnit: item.PricePerUnit(),
			Weight:       item.Weight(),
		})
	}
	contact := o.Contact()
	return OrderView{
		Code:            o.Code().String(),
		MemberCode:      o.MemberCode().String(),
		InstitutionCode: o.InstitutionCode().String(),
		Status:          o.Status().Code(),
		StatusName:      o.Status().String(),
		Items:           items,
		Freight:         o.Freight(),
		TotalAmount:     o.TotalAmount(),
		TotalWeight:     o.TotalWeight(),
		Phone:           contact.Phone().String(),
		Email:           contact.Email().String(),
		Address:         contact.Address().String(),
		ExpressCompany:  o.ExpressCompany().String(),
		ExpressNumber:   o.ExpressNumber().String(),
		Creator:         o.Creator().String(),
		CreatedAt:       uint64(o.CreatedAt()),
		UpdatedAt:       uint64(o.UpdatedAt()),
	}
}

type TokenView struct {
	Code            string `json:"code"`
	InstitutionCode string `json:"institution_code"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Price           uint64 `json:"price"`
	Direction       uint8  `json:"direction"`
	Stock           uint64 `json:"stock"`
	Sales           uint64 `json:"sales"`
	Status          uint8  `json:"status"`
	StatusName      string `json:"status_name"`
	Creator         string `json:"creator"`
	CreatedAt       uint64 `json:"created_at"`
	UpdatedAt       uint64 `json:"updated_at"`
}

func newTokenView(t *token.Token) TokenView {
	return TokenView{
		Code:            t.Code().String(),
		InstitutionCode: t.InstitutionCode().String(),
		Name:            t.Name().String(),
		Category:        t.Category().String(),
		Price:           t.Price(),
		Direction:       t.Direction().Code(),
		Stock:           t.Stock(),
		Sales:           t.Sales(),
		Status:          t.Status().Code(),
		StatusName:      t.Status().String(),
		Creator:         t.Creator().String(),
		CreatedAt:       uint64(t.CreatedAt()),
		UpdatedAt:       uint64(t.UpdatedAt()),
	}
}

type InstitutionView struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	FullName          string  `json:"full_name"`
	LicenseImageURL   string  `json:"license_image_url,omitempty"`
	ResponsiblePerson string  `json:"responsible_person,omitempty"`
	BusinessScope     string  `json:"business_scope,omitempty"`
	ProfitContract    *string `json:"profit_contract,omitempty"`
	Status            uint8   `json:"status"`
	StatusName        string  `json:"status_name"`
	Creator           string  `json:"creator"`
	CreatedAt         uint64  `json:"created_at"`
	UpdatedAt         uint64  `json:"updated_at"`
}

func newInstitutionView(i *institution.Institution) InstitutionView {
	info := i.Info()
	return InstitutionView{
		ID:                i.ID().String(),
		Name:              info.Name.String(),
		FullName:          info.FullName.String(),
		LicenseImageURL:   info.LicenseImageURL.String(),
		ResponsiblePerson: info.ResponsiblePerson.String(),
		BusinessScope:     info.BusinessScope.String(),
		ProfitContract:    optionalString(info.ProfitContract),
		Status:            i.Status().Code(),
		StatusName:        i.Status().String(),
		Creator:           i.Creator().String(),
		CreatedAt:         uint64(i.CreatedAt()),
		UpdatedAt:         uint64(i.UpdatedAt()),
	}
}

type ProductView struct {
	Code             string   `json:"code"`
	InstitutionCode  string   `json:"institution_code"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Brand            string   `json:"brand,omitempty"`
	AuthorizedGroups []string `json:"authorized_groups"`
	OriginalPrice    uint64   `json:"original_price"`
	CurrentPrice     uint64   `json:"current_price"`
	Description      string   `json:"description,omitempty"`
	MainImage        string   `json:"main_image,omitempty"`
	DetailImages     []string `json:"detail_images"`
	Weight           uint32   `json:"weight"`
	ProfitRatio      uint32   `json:"profit_ratio"`
	Stock            uint64   `json:"stock"`
	Sales            uint64   `json:"sales"`
	Status           uint8    `json:"status"`
	StatusName       string   `json:"status_name"`
	Creator          string   `json:"creator"`
	CreatedAt        uint64   `json:"created_at"`
	UpdatedAt        uint64   `json:"updated_at"`
}

func newProductView(p *product.Product) ProductView {
	d := p.Details()
	return ProductView{
		Code:             p.Code().String(),
		InstitutionCode:  p.InstitutionCode().String(),
		Name:             d.Name.String(),
		Category:         d.Category.String(),
		Brand:            d.Brand.String(),
		AuthorizedGroups: stringsOf(d.AuthorizedGroups),
		OriginalPrice:    d.OriginalPrice,
		CurrentPrice:     d.CurrentPrice,
		Description:      d.Description.String(),
		MainImage:        d.MainImage.String(),
		DetailImages:     stringsOf(d.DetailImages),
		Weight:           d.Weight,
		ProfitRatio:      d.ProfitRatio,
		Stock:            p.Stock(),
		Sales:            p.Sales(),
		Status:           p.Status().Code(),
		StatusName:       p.Status().String(),
		Creator:          p.Creator().String(),
		CreatedAt:        uint64(p.CreatedAt()),
		UpdatedAt:        uint64(p.UpdatedAt()),
	}
}

type FreightTemplateView struct {
	Area                string `json:"area"`
	FirstWeight         uint32 `json:"first_weight"`
	FirstWeightFee      uint32 `json:"first_weight_fee"`
	AdditionalWeightFee uint32 `json:"additional_weight_fee"`
	Creator             string `json:"creator"`
	CreatedAt           uint64 `json:"created_at"`
	UpdatedAt           uint64 `json:"updated_at"`
}

func newFreightTemplateView(t *freight.Template) FreightTemplateView {
	fees := t.Fees()
	return FreightTemplateView{
		Area:                t.Area().String(),
		FirstWeight:         fees.FirstWeight,
		FirstWeightFee:      fees.FirstWeightFee,
		AdditionalWeightFee: fees.AdditionalWeightFee,
		Creator:             t.Creator().String(),
		CreatedAt:           uint64(t.CreatedAt()),
		UpdatedAt:           uint64(t.UpdatedAt()),
	}
}

type PaymentMethodView struct {
	InstitutionID string  `json:"institution_id"`
	WeChat        *string `json:"wechat,omitempty"`
	Alipay        *string `json:"alipay,omitempty"`
	Token         *string `json:"token,omitempty"`
	Other         *string `json:"other,omitempty"`
	Creator       string  `json:"creator"`
	CreatedAt     uint64  `json:"created_at"`
	UpdatedAt     uint64  `json:"updated_at"`
}

func newPaymentMethodView(m *payment.Method) PaymentMethodView {
	ch := m.Channels()
	return PaymentMethodView{
		InstitutionID: m.InstitutionID().String(),
		WeChat:        optionalString(ch.WeChat),
		Alipay:        optionalString(ch.Alipay),
		Token:         optionalString(ch.Token),
		Other:         optionalString(ch.Other),
		Creator:       m.Creator().String(),
		CreatedAt:     uint64(m.CreatedAt()),
		UpdatedAt:     uint64(m.UpdatedAt()),
	}
}

func optionalString(id *kernel.BoundedID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func stringsOf(ids []kernel.BoundedID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
