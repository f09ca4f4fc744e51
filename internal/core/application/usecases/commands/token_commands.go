package commands

import (
	"errors"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/token"
	"github.com/lao-sha/fissionmall/internal/pkg/guard"
)

var (
	ErrCreateTokenCommandIsNotConstructed = errors.New(
		"CreateTokenCommand must be created via NewCreateTokenCommand constructor",
	)
	ErrUpdateTokenInfoCommandIsNotConstructed = errors.New(
		"UpdateTokenInfoCommand must be created via NewUpdateTokenInfoCommand constructor",
	)
	ErrUpdateTokenStatusCommandIsNotConstructed = errors.New(
		"UpdateTokenStatusCommand must be created via NewUpdateTokenStatusCommand constructor",
	)
	ErrTokenAmountCommandIsNotConstructed = errors.New(
		"TokenAmountCommand must be created via NewTokenAmountCommand constructor",
	)
	ErrTokenCommandIsNotConstructed = errors.New(
		"TokenCommand must be created via NewTokenCommand constructor",
	)
)

// TokenRef addresses a token by its code and the code of its institution.
type TokenRef struct {
	code            kernel.BoundedID
	institutionCode kernel.BoundedID
}

func newTokenRef(code, institutionCode string) (TokenRef, error) {
	var ref TokenRef
	var codeErr, institutionErr error
	ref.code, codeErr = kernel.NewRequiredCode("token code", code)
	ref.institutionCode, institutionErr = kernel.NewRequiredCode("institution code", institutionCode)
	return ref, errors.Join(codeErr, institutionErr)
}

func (r TokenRef) Code() kernel.BoundedID            { return r.code }
func (r TokenRef) InstitutionCode() kernel.BoundedID { return r.institutionCode }

// TokenListing holds the raw fields of a new token.
type TokenListing struct {
	Name      string
	Category  string
	Price     uint64
	Direction uint8
	Stock     uint64
}

// CreateTokenCommand lists a token as Available.
type CreateTokenCommand struct { //nolint:recvcheck //using for validation
	TokenRef

	caller kernel.AccountID
	info   token.Info

	guard guard.ConstructorGuard
}

func NewCreateTokenCommand(caller, code, institutionCode string, listing TokenListing) (CreateTokenCommand, error) {
	cmd := CreateTokenCommand{
		info: token.Info{
			Price: listing.Price,
			Stock: listing.Stock,
		},
		guard: guard.NewConstructorGuard(),
	}

	var callerErr, refErr, nameErr, categoryErr, directionErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.TokenRef, refErr = newTokenRef(code, institutionCode)
	cmd.info.Name, nameErr = kernel.NewBoundedID("token name", listing.Name, kernel.MaxNameLength)
	cmd.info.Category, categoryErr = kernel.NewBoundedID("token category", listing.Category, kernel.MaxNameLength)
	cmd.info.Direction, directionErr = token.DirectionFromCode(listing.Direction)

	if err := errors.Join(callerErr, refErr, nameErr, categoryErr, directionErr); err != nil {
		return CreateTokenCommand{}, err
	}
	return cmd, nil
}

func (c CreateTokenCommand) Validate() error {
	return c.guard.Validate(ErrCreateTokenCommandIsNotConstructed)
}

func (c CreateTokenCommand) Caller() kernel.AccountID { return c.caller }
func (c CreateTokenCommand) Info() token.Info         { return c.info }

// TokenInfoChanges carries the optional fields of an info update.
type TokenInfoChanges struct {
	Name      *string
	Category  *string
	Price     *uint64
	Direction *uint8
}

// UpdateTokenInfoCommand replaces the given descriptive fields.
type UpdateTokenInfoCommand struct { //nolint:recvcheck //using for validation
	TokenRef

	caller kernel.AccountID
	update token.InfoUpdate

	guard guard.ConstructorGuard
}

func NewUpdateTokenInfoCommand(
	caller, code, institutionCode string,
	changes TokenInfoChanges,
) (UpdateTokenInfoCommand, error) {
	cmd := UpdateTokenInfoCommand{
		update: token.InfoUpdate{Price: changes.Price},
		guard:  guard.NewConstructorGuard(),
	}

	var callerErr, refErr, nameErr, categoryErr, directionErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.TokenRef, refErr = newTokenRef(code, institutionCode)
	cmd.update.Name, nameErr = kernel.NewOptionalText("token name", changes.Name, kernel.MaxNameLength)
	cmd.update.Category, categoryErr = kernel.NewOptionalText("token category", changes.Category, kernel.MaxNameLength)
	if changes.Direction != nil {
		var direction token.Direction
		direction, directionErr = token.DirectionFromCode(*changes.Direction)
		cmd.update.Direction = &direction
	}

	if err := errors.Join(callerErr, refErr, nameErr, categoryErr, directionErr); err != nil {
		return UpdateTokenInfoCommand{}, err
	}
	return cmd, nil
}

func (c UpdateTokenInfoCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTokenInfoCommandIsNotConstructed)
}

func (c UpdateTokenInfoCommand) Caller() kernel.AccountID { return c.caller }
func (c UpdateTokenInfoCommand) Update() token.InfoUpdate { return c.update }

// UpdateTokenStatusCommand switches a token between Available and Unavailable.
type UpdateTokenStatusCommand struct { //nolint:recvcheck //using for validation
	TokenRef

	caller kernel.AccountID
	status kernel.Availability

	guard guard.ConstructorGuard
}

func NewUpdateTokenStatusCommand(caller, code, institutionCode string, status uint8) (UpdateTokenStatusCommand, error) {
	cmd := UpdateTokenStatusCommand{guard: guard.NewConstructorGuard()}

	var callerErr, refErr, statusErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.TokenRef, refErr = newTokenRef(code, institutionCode)
	cmd.status, statusErr = kernel.AvailabilityFromCode(status)

	if err := errors.Join(callerErr, refErr, statusErr); err != nil {
		return UpdateTokenStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateTokenStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTokenStatusCommandIsNotConstructed)
}

func (c UpdateTokenStatusCommand) Caller() kernel.AccountID    { return c.caller }
func (c UpdateTokenStatusCommand) Status() kernel.Availability { return c.status }

// TokenAmountCommand carries one number for a token: the new price, the new
// stock or the traded quantity, depending on the handler it is sent to.
type TokenAmountCommand struct { //nolint:recvcheck //using for validation
	TokenRef

	caller kernel.AccountID
	amount uint64

	guard guard.ConstructorGuard
}

func NewTokenAmountCommand(caller, code, institutionCode string, amount uint64) (TokenAmountCommand, error) {
	cmd := TokenAmountCommand{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}

	var callerErr, refErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.TokenRef, refErr = newTokenRef(code, institutionCode)

	if err := errors.Join(callerErr, refErr); err != nil {
		return TokenAmountCommand{}, err
	}
	return cmd, nil
}

func (c TokenAmountCommand) Validate() error {
	return c.guard.Validate(ErrTokenAmountCommandIsNotConstructed)
}

func (c TokenAmountCommand) Caller() kernel.AccountID { return c.caller }
func (c TokenAmountCommand) Amount() uint64           { return c.amount }

// TokenCommand addresses one token for delete.
type TokenCommand struct { //nolint:recvcheck //using for validation
	TokenRef

	caller kernel.AccountID

	guard guard.ConstructorGuard
}

func NewTokenCommand(caller, code, institutionCode string) (TokenCommand, error) {
	cmd := TokenCommand{guard: guard.NewConstructorGuard()}

	var callerErr, refErr error
	cmd.caller, callerErr = kernel.NewAccountID(caller)
	cmd.TokenRef, refErr = newTokenRef(code, institutionCode)

	if err := errors.Join(callerErr, refErr); err != nil {
		return TokenCommand{}, err
	}
	return cmd, nil
}

func (c TokenCommand) Validate() error {
	return c.guard.Validate(ErrTokenCommandIsNotConstructed)
}

func (c TokenCommand) Caller() kernel.AccountID { return c.caller }
