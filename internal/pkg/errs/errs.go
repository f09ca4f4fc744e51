package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels. Every concrete error in this package unwraps, directly or
// through its own sentinel, to exactly one of them.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotAuthorized = errors.New("not authorized")
	ErrConflict      = errors.New("conflict")
	ErrState         = errors.New("state is invalid")
	ErrCapacity      = errors.New("capacity exceeded")
	// ErrIntegrity marks stored data the service itself cannot read back.
	ErrIntegrity     = errors.New("stored data is invalid")
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = newSentinel("value is invalid", ErrValidation)
	ErrValueIsOutOfRange = newSentinel("value is out of range", ErrValidation)
	ErrValueIsRequired   = newSentinel("value is required", ErrValidation)
	ErrVersionIsInvalid  = newSentinel("version is invalid", ErrIntegrity)

	ErrObjectAlreadyExists = newSentinel("object already exists", ErrConflict)
	ErrStatusIsInvalid     = newSentinel("status is invalid", ErrState)
	ErrTransitionIsInvalid = newSentinel("status transition is invalid", ErrState)
	ErrOperationNotAllowed = newSentinel("operation is not allowed", ErrState)
	ErrIndexIsFull         = newSentinel("index is full", ErrCapacity)
)

// sentinel is a named error that belongs to a category.
type sentinel struct {
	msg      string
	category error
}

func newSentinel(msg string, category error) error {
	return &sentinel{msg: msg, category: category}
}

func (s *sentinel) Error() string { return s.msg }

func (s *sentinel) Unwrap() error { return s.category }

// sanitize keeps values that end up in messages on one line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing record.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, e.ID),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

// ValueIsInvalidError reports a value that fails a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// ValueIsOutOfRangeError reports a value outside [Min, Max]. Bounded identifiers
// use it for LengthExceeded with Value set to the offending length.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid,
		sanitize(e.Value),
		sanitize(e.ParamName),
		sanitize(e.Min),
		sanitize(e.Max),
	), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// VersionIsInvalidError reports an unreadable persisted record version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error { return ErrVersionIsInvalid }

// ObjectAlreadyExistsError reports an insert over an existing key.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
}

func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

func (e *ObjectAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectAlreadyExists, e.ParamName, sanitize(e.ID))
}

func (e *ObjectAlreadyExistsError) Unwrap() error { return ErrObjectAlreadyExists }

// NotAuthorizedError reports a caller that may not perform Action on a record.
type NotAuthorizedError struct {
	Action string
	Caller string
}

func NewNotAuthorizedError(action, caller string) *NotAuthorizedError {
	return &NotAuthorizedError{Action: action, Caller: caller}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrNotAuthorized, sanitize(e.Caller), e.Action)
}

func (e *NotAuthorizedError) Unwrap() error { return ErrNotAuthorized }

// StatusIsInvalidError reports an integer status code with no matching status.
type StatusIsInvalidError struct {
	ParamName string
	Code      any
}

func NewStatusIsInvalidError(paramName string, code any) *StatusIsInvalidError {
	return &StatusIsInvalidError{ParamName: paramName, Code: code}
}

func (e *StatusIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s code %s is unknown", ErrStatusIsInvalid, e.ParamName, sanitize(e.Code))
}

func (e *StatusIsInvalidError) Unwrap() error { return ErrStatusIsInvalid }

// TransitionIsInvalidError reports an edge missing from a transition table.
type TransitionIsInvalidError struct {
	From string
	To   string
}

func NewTransitionIsInvalidError(from, to string) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from, To: to}
}

func (e *TransitionIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrTransitionIsInvalid, e.From, e.To)
}

func (e *TransitionIsInvalidError) Unwrap() error { return ErrTransitionIsInvalid }

// IndexIsFullError reports an index bucket that reached its capacity.
type IndexIsFullError struct {
	Index    string
	Bucket   string
	Capacity int
}

func NewIndexIsFullError(index, bucket string, capacity int) *IndexIsFullError {
	return &IndexIsFullError{Index: index, Bucket: bucket, Capacity: capacity}
}

func (e *IndexIsFullError) Error() string {
	return fmt.Sprintf("%s: %s[%s] holds %d entries", ErrIndexIsFull, e.Index, sanitize(e.Bucket), e.Capacity)
}

func (e *IndexIsFullError) Unwrap() error { return ErrIndexIsFull }

// OperationNotAllowedError reports an operation the record's current status
// forbids, such as trading an unavailable token.
type OperationNotAllowedError struct {
	Operation string
	Status    string
}

func NewOperationNotAllowedError(operation, status string) *OperationNotAllowedError {
	return &OperationNotAllowedError{Operation: operation, Status: status}
}

func (e *OperationNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s in status %s", ErrOperationNotAllowed, e.Operation, e.Status)
}

func (e *OperationNotAllowedError) Unwrap() error { return ErrOperationNotAllowed }
