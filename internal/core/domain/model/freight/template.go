// Package freight models per-area shipping fee templates.
package freight

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate or RestoreTemplate")

const (
	EventCreated = "freight_template.created"
	EventUpdated = "freight_template.updated"
	EventDeleted = "freight_template.deleted"
)

// Fees prices a parcel: FirstWeightFee covers up to FirstWeight, every further
// unit of weight costs AdditionalWeightFee.
type Fees struct {
	FirstWeight         uint32
	FirstWeightFee      uint32
	AdditionalWeightFee uint32
}

// FeesUpdate carries optional replacements; nil fields are kept.
type FeesUpdate struct {
	FirstWeight         *uint32
	FirstWeightFee      *uint32
	AdditionalWeightFee *uint32
}

// Template is keyed by delivery area.
type Template struct {
	kernel.AggregateRoot

	area      kernel.BoundedID
	fees      Fees
	creator   kernel.AccountID
	createdAt kernel.Timestamp
	updatedAt kernel.Timestamp

	isConstructed bool
}

func NewTemplate(area kernel.BoundedID, fees Fees, creator kernel.AccountID, at kernel.Timestamp) (*Template, error) {
	t, err := RestoreTemplate(area, fees, creator, at, at)
	if err != nil {
		return nil, err
	}
	t.RaiseDomainEvent(kernel.NewEvent(EventCreated, area.String(), at, "creator", creator.String()))
	return t, nil
}

func RestoreTemplate(
	area kernel.BoundedID,
	fees Fees,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Template, error) {
	if area.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("area")
	}
	if err := creator.Validate(); err != nil {
		return nil, err
	}
	return &Template{
		area:          area,
		fees:          fees,
		creator:       creator,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (t *Template) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTemplateIsNotConstructed
	}
	return nil
}

func (t *Template) Area() kernel.BoundedID      { return t.area }
func (t *Template) Fees() Fees                  { return t.fees }
func (t *Template) Creator() kernel.AccountID   { return t.creator }
func (t *Template) CreatedAt() kernel.Timestamp { return t.createdAt }
func (t *Template) UpdatedAt() kernel.Timestamp { return t.updatedAt }

// Quote returns the fee for a parcel of weight, saturating at the uint32 ceiling.
func (t *Template) Quote(weight uint32) uint32 {
	fee := uint64(t.fees.FirstWeightFee)
	if weight > t.fees.FirstWeight {
		fee += uint64(weight-t.fees.FirstWeight) * uint64(t.fees.AdditionalWeightFee)
	}
	if fee > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(fee)
}

func (t *Template) Update(update FeesUpdate, at kernel.Timestamp) {
	if update.FirstWeight != nil {
		t.fees.FirstWeight = *update.FirstWeight
	}
	if update.FirstWeightFee != nil {
		t.fees.FirstWeightFee = *update.FirstWeightFee
	}
	if update.AdditionalWeightFee != nil {
		t.fees.AdditionalWeightFee = *update.AdditionalWeightFee
	}
	t.updatedAt = t.updatedAt.Max(at)
	t.RaiseDomainEvent(kernel.NewEvent(EventUpdated, t.area.String(), t.updatedAt))
}

func (t *Template) MarkDeleted(at kernel.Timestamp) {
	t.RaiseDomainEvent(kernel.NewEvent(EventDeleted, t.area.String(), t.updatedAt.Max(at)))
}
