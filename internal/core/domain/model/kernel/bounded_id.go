package kernel

import (
	"strconv"
	"strings"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Field length limits, in bytes.
const (
	MaxCodeLength        = 64
	MaxNameLength        = 128
	MaxURLLength         = 256
	MaxTextLength        = 512
	MaxPhoneLength       = 32
	MaxEmailLength       = 128
	MaxAccountIDLength   = 64
	MaxPaymentLength     = 256
	MaxExpressInfoLength = 64
)

// BoundedID is an immutable byte string no longer than the limit it was created
// with. The zero value is the empty identifier. BoundedID is comparable and can be
// used as a map key.
//
// No trimming, case folding or encoding checks are applied: two identifiers are
// equal exactly when their bytes are equal.
type BoundedID struct {
	value string
}

// NewBoundedID returns raw as a BoundedID, or a ValueIsOutOfRangeError (a
// validation error) when raw is longer than maxLen bytes.
func NewBoundedID(paramName string, raw string, maxLen int) (BoundedID, error) {
	if len(raw) > maxLen {
		return BoundedID{}, errs.NewValueIsOutOfRangeError(paramName, len(raw), 0, maxLen)
	}
	return BoundedID{value: raw}, nil
}

// NewCode bounds raw by MaxCodeLength.
func NewCode(paramName string, raw string) (BoundedID, error) {
	return NewBoundedID(paramName, raw, MaxCodeLength)
}

// NewRequiredCode is NewCode that also rejects the empty string.
func NewRequiredCode(paramName string, raw string) (BoundedID, error) {
	if raw == "" {
		return BoundedID{}, errs.NewValueIsRequiredError(paramName)
	}
	return NewCode(paramName, raw)
}

// NewOptionalText bounds raw by maxLen, passing nil through as nil.
func NewOptionalText(paramName string, raw *string, maxLen int) (*BoundedID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := NewBoundedID(paramName, *raw, maxLen)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (b BoundedID) String() string {
	return b.value
}

func (b BoundedID) Bytes() []byte {
	return []byte(b.value)
}

func (b BoundedID) Len() int {
	return len(b.value)
}

func (b BoundedID) IsEmpty() bool {
	return b.value == ""
}

func (b BoundedID) IsEqual(other BoundedID) bool {
	return b.value == other.value
}

// CompositeKey encodes several identifiers into one primary key. Each part is
// length-prefixed, so distinct tuples never share an encoding even when parts
// contain separator bytes.
func CompositeKey(parts ...BoundedID) string {
	raw := make([]string, len(parts))
	for i, p := range parts {
		raw[i] = p.value
	}
	return CompositeKeyOf(raw...)
}

// CompositeKeyOf is CompositeKey over raw strings.
func CompositeKeyOf(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}
