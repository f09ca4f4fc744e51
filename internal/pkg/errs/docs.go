// Package errs holds the error taxonomy of the record service.
//
// Every concrete error unwraps to a named sentinel (ErrValueIsRequired,
// ErrIndexIsFull, ...), and every sentinel except ErrObjectNotFound belongs to
// one category: ErrValidation, ErrNotAuthorized, ErrConflict, ErrState,
// ErrCapacity or ErrIntegrity. Adapters classify failures with errors.Is
// against a category, domain code and tests against the narrower sentinel:
//
//	if errors.Is(err, errs.ErrState) {
//	    // rejected by a transition table or an unknown status code
//	}
//
// Constructors come in pairs where a cause is useful (NewXError and
// NewXErrorWithCause). Values quoted in messages are flattened to one line.
package errs
