package kernel

import (
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

var ErrAccountIDIsNotConstructed = errs.NewValueIsRequiredError("account")

// AccountID identifies the caller of a command. Callers are trusted as given;
// verifying them is the job of the transport in front of the handlers.
type AccountID struct {
	value string
}

// NewAccountID rejects empty identities and identities longer than MaxAccountIDLength.
func NewAccountID(raw string) (AccountID, error) {
	if raw == "" {
		return AccountID{}, ErrAccountIDIsNotConstructed
	}
	if len(raw) > MaxAccountIDLength {
		return AccountID{}, errs.NewValueIsOutOfRangeError("account", len(raw), 1, MaxAccountIDLength)
	}
	return AccountID{value: raw}, nil
}

func (a AccountID) String() string {
	return a.value
}

func (a AccountID) IsEqual(other AccountID) bool {
	return a.value == other.value
}

// Validate fails for the zero value.
func (a AccountID) Validate() error {
	if a.value == "" {
		return ErrAccountIDIsNotConstructed
	}
	return nil
}

// IsZero reports whether a is the zero value.
func (a AccountID) IsZero() bool {
	return a.value == ""
}
