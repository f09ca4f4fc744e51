package commands

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrCreateFreightTemplateCommandIsNotConstructed = errors.New(
		"CreateFreightTemplateCommand must be created via NewCreateFreightTemplateCommand constructor",
	)
	ErrUpdateFreightTemplateCommandIsNotConstructed = errors.New(
		"UpdateFreightTemplateCommand must be created via NewUpdateFreightTemplateCommand constructor",
	)
	ErrFreightTemplateCommandIsNotConstructed = errors.New(
		"FreightTemplateCommand must be created via NewFreightTemplateCommand constructor",
	)
)

// CreateFreightTemplateCommand registers the shipping fees of one area.
type CreateFreightTemplateCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	area   kernel.BoundedID
	fees   freight.Fees

	guard guard.ConstructorGuard
}

func NewCreateFreightTemplateCommand(caller, area string, fees freight.Fees) (CreateFreightTemplateCommand, error) {
	cmd := CreateFreightTemplateCommand{
		fees:  fees,
		guard: guard.NewConstructorGuard(),
	}

	var callerErr, areaErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.area, areaErr = kernel.NewRequiredCode("area", area)

	if err := errors.Join(callerErr, areaErr); err != nil {
		return CreateFreightTemplateCommand{}, err
	}
	return cmd, nil
}

func (c CreateFreightTemplateCommand) Validate() error {
	return c.guard.Validate(ErrCreateFreightTemplateCommandIsNotConstructed)
}

func (c CreateFreightTemplateCommand) Caller() kernel.AccountID { return c.caller }
func (c CreateFreightTemplateCommand) Area() kernel.BoundedID   { return c.area }
func (c CreateFreightTemplateCommand) Fees() freight.Fees       { return c.fees }

// UpdateFreightTemplateCommand replaces the given fees; nil fields are kept.
type UpdateFreightTemplateCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	area   kernel.BoundedID
	update freight.FeesUpdate

	guard guard.ConstructorGuard
}

func NewUpdateFreightTemplateCommand(
	caller, area string,
	update freight.FeesUpdate,
) (UpdateFreightTemplateCommand, error) {
	cmd := UpdateFreightTemplateCommand{
		update: update,
		guard:  guard.NewConstructorGuard(),
	}

	var callerErr, areaErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.area, areaErr = kernel.NewRequiredCode("area", area)

	if err := errors.Join(callerErr, areaErr); err != nil {
		return UpdateFreightTemplateCommand{}, err
	}
	return cmd, nil
}

func (c UpdateFreightTemplateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFreightTemplateCommandIsNotConstructed)
}

func (c UpdateFreightTemplateCommand) Caller() kernel.AccountID   { return c.caller }
func (c UpdateFreightTemplateCommand) Area() kernel.BoundedID     { return c.area }
func (c UpdateFreightTemplateCommand) Update() freight.FeesUpdate { return c.update }

type FreightTemplateCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	area   kernel.BoundedID

	guard guard.ConstructorGuard
}

func NewFreightTemplateCommand(caller, area string) (FreightTemplateCommand, error) {
	cmd := FreightTemplateCommand{guard: guard.NewConstructorGuard()}

	var callerErr, areaErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.area, areaErr = kernel.NewRequiredCode("area", area)

	if err := errors.Join(callerErr, areaErr); err != nil {
		return FreightTemplateCommand{}, err
	}
	return cmd, nil
}

func (c FreightTemplateCommand) Validate() error {
	return c.guard.Validate(ErrFreightTemplateCommandIsNotConstructed)
}

func (c FreightTemplateCommand) Caller() kernel.AccountID { return c.caller }
func (c FreightTemplateCommand) Area() kernel.BoundedID   { return c.area }
