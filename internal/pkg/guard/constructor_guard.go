// Package guard detects value types that skipped their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and value objects. Its zero
// value fails Validate, so a struct literal that bypassed NewX is rejected at the
// first handler that checks it.
//
//	type CancelC2COrderCommand struct {
//	    orderCode kernel.BoundedID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c CancelC2COrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCancelC2COrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes Validate.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard, otherwise validationError or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
