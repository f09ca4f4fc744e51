// Package institution models the sellers that own orders, tokens and products.
package institution

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var ErrInstitutionIsNotConstructed = errors.New("Institution must be created via NewInstitution or RestoreInstitution")

const (
	EventCreated       = "institution.created"
	EventStatusUpdated = "institution.status_updated"
	EventInfoUpdated   = "institution.info_updated"
	EventDeleted       = "institution.deleted"
)

// Info holds the registration details of an institution.
type Info struct {
	Name              kernel.BoundedID
	FullName          kernel.BoundedID
	LicenseImageURL   kernel.BoundedID
	ResponsiblePerson kernel.BoundedID
	BusinessScope     kernel.BoundedID
	ProfitContract    *kernel.BoundedID
}

// InfoUpdate carries optional replacements; nil fields are kept.
type InfoUpdate struct {
	Name              *kernel.BoundedID
	FullName          *kernel.BoundedID
	LicenseImageURL   *kernel.BoundedID
	ResponsiblePerson *kernel.BoundedID
	BusinessScope     *kernel.BoundedID
	ProfitContract    *kernel.BoundedID
}

type Institution struct {
	kernel.AggregateRoot

	id     kernel.BoundedID
	info   Info
	status Status

	creator   kernel.AccountID
	createdAt kernel.Timestamp
	updatedAt kernel.Timestamp

	isConstructed bool
}

// NewInstitution registers an institution as NotCertified.
func NewInstitution(id kernel.BoundedID, info Info, creator kernel.AccountID, at kernel.Timestamp) (*Institution, error) {
	i := &Institution{
		info:          cloneInfo(info),
		status:        DefaultStatus,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(i.setID(id), i.setCreator(creator)); err != nil {
		return nil, err
	}

	i.RaiseDomainEvent(kernel.NewEvent(EventCreated, id.String(), at, "creator", creator.String()))
	return i, nil
}

func RestoreInstitution(
	id kernel.BoundedID,
	info Info,
	status Status,
	creator kernel.AccountID,
	createdAt, updatedAt kernel.Timestamp,
) (*Institution, error) {
	i := &Institution{
		info:          cloneInfo(info),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if _, err := StatusFromCode(status.Code()); err != nil {
		return nil, err
	}
	i.status = status

	if err := errors.Join(i.setID(id), i.setCreator(creator)); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Institution) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInstitutionIsNotConstructed
	}
	return nil
}

func (i *Institution) ID() kernel.BoundedID        { return i.id }
func (i *Institution) Info() Info                  { return cloneInfo(i.info) }
func (i *Institution) Status() Status              { return i.status }
func (i *Institution) Creator() kernel.AccountID   { return i.creator }
func (i *Institution) CreatedAt() kernel.Timestamp { return i.createdAt }
func (i *Institution) UpdatedAt() kernel.Timestamp { return i.updatedAt }

func (i *Institution) UpdateStatus(status Status, at kernel.Timestamp) error {
	if _, err := StatusFromCode(status.Code()); err != nil {
		return err
	}
	if err := transitions.Validate(i.status, status); err != nil {
		return err
	}

	i.status = status
	i.touch(at)
	i.RaiseDomainEvent(kernel.NewEvent(EventStatusUpdated, i.id.String(), i.updatedAt,
		"status", strconv.Itoa(int(status.Code()))))
	return nil
}

func (i *Institution) UpdateInfo(update InfoUpdate, at kernel.Timestamp) {
	if update.Name != nil {
		i.info.Name = *update.Name
	}
	if update.FullName != nil {
		i.info.FullName = *update.FullName
	}
	if update.LicenseImageURL != nil {
		i.info.LicenseImageURL = *update.LicenseImageURL
	}
	if update.ResponsiblePerson != nil {
		i.info.ResponsiblePerson = *update.ResponsiblePerson
	}
	if update.BusinessScope != nil {
		i.info.BusinessScope = *update.BusinessScope
	}
	if update.ProfitContract != nil {
		contract := *update.ProfitContract
		i.info.ProfitContract = &contract
	}

	i.touch(at)
	i.RaiseDomainEvent(kernel.NewEvent(EventInfoUpdated, i.id.String(), i.updatedAt))
}

func (i *Institution) MarkDeleted(at kernel.Timestamp) {
	i.RaiseDomainEvent(kernel.NewEvent(EventDeleted, i.id.String(), i.updatedAt.Max(at)))
}

func (i *Institution) touch(at kernel.Timestamp) {
	i.updatedAt = i.updatedAt.Max(at)
}

func (i *Institution) setID(id kernel.BoundedID) error {
	if id.IsEmpty() {
		return errs.NewValueIsRequiredError("institution id")
	}
	i.id = id
	return nil
}

func (i *Institution) setCreator(creator kernel.AccountID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	i.creator = creator
	return nil
}

func cloneInfo(info Info) Info {
	if info.ProfitContract != nil {
		contract := *info.ProfitContract
		info.ProfitContract = &contract
	}
	return info
}
