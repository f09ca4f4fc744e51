package commands

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/institution"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrCreateInstitutionCommandIsNotConstructed = errors.New(
		"CreateInstitutionCommand must be created via NewCreateInstitutionCommand constructor",
	)
	ErrUpdateInstitutionStatusCommandIsNotConstructed = errors.New(
		"UpdateInstitutionStatusCommand must be created via NewUpdateInstitutionStatusCommand constructor",
	)
	ErrUpdateInstitutionInfoCommandIsNotConstructed = errors.New(
		"UpdateInstitutionInfoCommand must be created via NewUpdateInstitutionInfoCommand constructor",
	)
	ErrInstitutionCommandIsNotConstructed = errors.New(
		"InstitutionCommand must be created via NewInstitutionCommand constructor",
	)
)

// InstitutionRegistration holds the raw registration fields.
type InstitutionRegistration struct {
	Name              string
	FullName          string
	LicenseImageURL   string
	ResponsiblePerson string
	BusinessScope     string
	ProfitContract    *string
}

// CreateInstitutionCommand registers an institution as NotCertified.
type CreateInstitutionCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	id     kernel.BoundedID
	info   institution.Info

	guard guard.ConstructorGuard
}

func NewCreateInstitutionCommand(
	caller, id string,
	registration InstitutionRegistration,
) (CreateInstitutionCommand, error) {
	cmd := CreateInstitutionCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr, infoErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.id, idErr = kernel.NewRequiredCode("institution id", id)
	cmd.info, infoErr = newInstitutionInfo(registration)

	if err := errors.Join(callerErr, idErr, infoErr); err != nil {
		return CreateInstitutionCommand{}, err
	}
	return cmd, nil
}

func newInstitutionInfo(r InstitutionRegistration) (institution.Info, error) {
	var info institution.Info
	var nameErr, fullNameErr, licenseErr, personErr, scopeErr, contractErr error
	info.Name, nameErr = kernel.NewBoundedID("name", r.Name, kernel.MaxNameLength)
	info.FullName, fullNameErr = kernel.NewBoundedID("full name", r.FullName, kernel.MaxNameLength)
	info.LicenseImageURL, licenseErr = kernel.NewBoundedID("license image url", r.LicenseImageURL, kernel.MaxNameLength)
	info.ResponsiblePerson, personErr = kernel.NewBoundedID("responsible person", r.ResponsiblePerson, kernel.MaxNameLength)
	info.BusinessScope, scopeErr = kernel.NewBoundedID("business scope", r.BusinessScope, kernel.MaxTextLength)
	info.ProfitContract, contractErr = kernel.NewOptionalText("profit contract", r.ProfitContract, kernel.MaxTextLength)
	return info, errors.Join(nameErr, fullNameErr, licenseErr, personErr, scopeErr, contractErr)
}

func (c CreateInstitutionCommand) Validate() error {
	return c.guard.Validate(ErrCreateInstitutionCommandIsNotConstructed)
}

func (c CreateInstitutionCommand) Caller() kernel.AccountID { return c.caller }
func (c CreateInstitutionCommand) ID() kernel.BoundedID     { return c.id }
func (c CreateInstitutionCommand) Info() institution.Info   { return c.info }

// UpdateInstitutionStatusCommand certifies, decertifies or deactivates an
// institution by status wire code.
type UpdateInstitutionStatusCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	id     kernel.BoundedID
	status institution.Status

	guard guard.ConstructorGuard
}

func NewUpdateInstitutionStatusCommand(caller, id string, status uint8) (UpdateInstitutionStatusCommand, error) {
	cmd := UpdateInstitutionStatusCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr, statusErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.id, idErr = kernel.NewRequiredCode("institution id", id)
	cmd.status, statusErr = institution.StatusFromCode(status)

	if err := errors.Join(callerErr, idErr, statusErr); err != nil {
		return UpdateInstitutionStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateInstitutionStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInstitutionStatusCommandIsNotConstructed)
}

func (c UpdateInstitutionStatusCommand) Caller() kernel.AccountID   { return c.caller }
func (c UpdateInstitutionStatusCommand) ID() kernel.BoundedID       { return c.id }
func (c UpdateInstitutionStatusCommand) Status() institution.Status { return c.status }

// InstitutionInfoChanges carries optional replacements; nil fields are kept.
type InstitutionInfoChanges struct {
	Name              *string
	FullName          *string
	LicenseImageURL   *string
	ResponsiblePerson *string
	BusinessScope     *string
	ProfitContract    *string
}

type UpdateInstitutionInfoCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	id     kernel.BoundedID
	update institution.InfoUpdate

	guard guard.ConstructorGuard
}

func NewUpdateInstitutionInfoCommand(
	caller, id string,
	changes InstitutionInfoChanges,
) (UpdateInstitutionInfoCommand, error) {
	cmd := UpdateInstitutionInfoCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.id, idErr = kernel.NewRequiredCode("institution id", id)

	var nameErr, fullNameErr, licenseErr, personErr, scopeErr, contractErr error
	u := &cmd.update
	u.Name, nameErr = kernel.NewOptionalText("name", changes.Name, kernel.MaxNameLength)
	u.FullName, fullNameErr = kernel.NewOptionalText("full name", changes.FullName, kernel.MaxNameLength)
	u.LicenseImageURL, licenseErr = kernel.NewOptionalText("license image url", changes.LicenseImageURL, kernel.MaxNameLength)
	u.ResponsiblePerson, personErr = kernel.NewOptionalText("responsible person", changes.ResponsiblePerson, kernel.MaxNameLength)
	u.BusinessScope, scopeErr = kernel.NewOptionalText("business scope", changes.BusinessScope, kernel.MaxTextLength)
	u.ProfitContract, contractErr = kernel.NewOptionalText("profit contract", changes.ProfitContract, kernel.MaxTextLength)

	if err := errors.Join(
		callerErr, idErr,
		nameErr, fullNameErr, licenseErr, personErr, scopeErr, contractErr,
	); err != nil {
		return UpdateInstitutionInfoCommand{}, err
	}
	return cmd, nil
}

func (c UpdateInstitutionInfoCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInstitutionInfoCommandIsNotConstructed)
}

func (c UpdateInstitutionInfoCommand) Caller() kernel.AccountID       { return c.caller }
func (c UpdateInstitutionInfoCommand) ID() kernel.BoundedID           { return c.id }
func (c UpdateInstitutionInfoCommand) Update() institution.InfoUpdate { return c.update }

// InstitutionCommand addresses one institution for delete.
type InstitutionCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	id     kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewInstitutionCommand(caller, id string) (InstitutionCommand, error) {
	cmd := InstitutionCommand{guard: guard.NewConstructorGuard()}

	var callerErr, idErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.id, idErr = kernel.NewRequiredCode("institution id", id)

	if err := errors.Join(callerErr, idErr); err != nil {
		return InstitutionCommand{}, err
	}
	return cmd, nil
}

func (c InstitutionCommand) Validate() error {
	return c.guard.Validate(ErrInstitutionCommandIsNotConstructed)
}

func (c InstitutionCommand) Caller() kernel.AccountID { return c.caller }
func (c InstitutionCommand) ID() kernel.BoundedID     { return c.id }
