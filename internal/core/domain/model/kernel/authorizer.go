package kernel

import (
	"slices"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Owned is a record with a creator.
type Owned interface {
	Creator() AccountID
}

// Authorizer decides whether caller may perform action on record.
type Authorizer interface {
	Authorize(caller AccountID, action string, record Owned) error
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(caller AccountID, action string, record Owned) error

func (f AuthorizerFunc) Authorize(caller AccountID, action string, record Owned) error {
	return f(caller, action, record)
}

// CreatorOnly allows the record's creator and nobody else.
func CreatorOnly() Authorizer {
	return AuthorizerFunc(func(caller AccountID, action string, record Owned) error {
		if record.Creator().IsEqual(caller) {
			return nil
		}
		return errs.NewNotAuthorizedError(action, caller.String())
	})
}

// Accounts allows the listed accounts on every record.
func Accounts(accounts ...AccountID) Authorizer {
	allowed := slices.Clone(accounts)
	return AuthorizerFunc(func(caller AccountID, action string, _ Owned) error {
		if slices.ContainsFunc(allowed, caller.IsEqual) {
			return nil
		}
		return errs.NewNotAuthorizedError(action, caller.String())
	})
}

// AnyOf allows a call when at least one authorizer allows it. With no
// authorizers every call is denied.
func AnyOf(authorizers ...Authorizer) Authorizer {
	return AuthorizerFunc(func(caller AccountID, action string, record Owned) error {
		for _, a := range authorizers {
			if a.Authorize(caller, action, record) == nil {
				return nil
			}
		}
		return errs.NewNotAuthorizedError(action, caller.String())
	})
}
