// Package institutionrepo persists institutions with their creator and status
// indexes.
package institutionrepo

import (
	"errors"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

const Kind = "institution"

type InstitutionDTO struct {
	ID                records.Text  `json:"id"`
	Name              records.Text  `json:"name"`
	FullName          records.Text  `json:"full_name"`
	LicenseImageURL   records.Text  `json:"license_image_url"`
	ResponsiblePerson records.Text  `json:"responsible_person"`
	BusinessScope     records.Text  `json:"business_scope"`
	ProfitContract    *records.Text `json:"profit_contract,omitempty"`
	Status            uint8         `json:"status"`
	Creator           records.Text  `json:"creator"`
	CreatedAt         uint64        `json:"created_at"`
	UpdatedAt         uint64        `json:"updated_at"`
}

func statusBucket(dto InstitutionDTO) string {
	return strconv.Itoa(int(dto.Status))
}

func fromDomain(i *institution.Institution) InstitutionDTO {
	info := i.Info()
	var contract *records.Text
	if info.ProfitContract != nil {
		t := records.Text(info.ProfitContract.String())
		contract = &t
	}
	return InstitutionDTO{
		ID:                records.Text(i.ID().String()),
		Name:              records.Text(info.Name.String()),
		FullName:          records.Text(info.FullName.String()),
		LicenseImageURL:   records.Text(info.LicenseImageURL.String()),
		ResponsiblePerson: records.Text(info.ResponsiblePerson.String()),
		BusinessScope:     records.Text(info.BusinessScope.String()),
		ProfitContract:    contract,
		Status:            i.Status().Code(),
		Creator:           records.Text(i.Creator().String()),
		CreatedAt:         uint64(i.CreatedAt()),
		UpdatedAt:         uint64(i.UpdatedAt()),
	}
}

func toDomain(dto InstitutionDTO) (*institution.Institution, error) {
	id, idErr := kernel.NewCode("institution id", string(dto.ID))
	name, nameErr := kernel.NewBoundedID("name", string(dto.Name), kernel.MaxNameLength)
	fullName, fullNameErr := kernel.NewBoundedID("full name", string(dto.FullName), kernel.MaxNameLength)
	license, licenseErr := kernel.NewBoundedID("license image url", string(dto.LicenseImageURL), kernel.MaxNameLength)
	person, personErr := kernel.NewBoundedID("responsible person", string(dto.ResponsiblePerson), kernel.MaxNameLength)
	scope, scopeErr := kernel.NewBoundedID("business scope", string(dto.BusinessScope), kernel.MaxTextLength)
	contract, contractErr := kernel.NewOptionalText("profit contract", dto.ProfitContract.StringPtr(), kernel.MaxTextLength)
	status, statusErr := institution.StatusFromCode(dto.Status)
	creator, creatorErr := kernel.NewAccountID(string(dto.Creator))
	if err := errors.Join(idErr, nameErr, fullNameErr, licenseErr, personErr, scopeErr,
		contractErr, statusErr, creatorErr); err != nil {
		return nil, err
	}

	info := institution.Info{
		Name:              name,
		FullName:          fullName,
		LicenseImageURL:   license,
		ResponsiblePerson: person,
		BusinessScope:     scope,
		ProfitContract:    contract,
	}
	return institution.RestoreInstitution(id, info, status, creator,
		kernel.Timestamp(dto.CreatedAt), kernel.Timestamp(dto.UpdatedAt))
}
