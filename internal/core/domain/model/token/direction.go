package token

import (
	"fmt"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Direction is the side a token listing trades on.
type Direction uint8

const (
	Sell Direction = iota
	Buy
)

func DirectionFromCode(code uint8) (Direction, error) {
	switch Direction(code) {
	case Sell, Buy:
		return Direction(code), nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not a known direction", code))
	}
}

func (d Direction) Code() uint8 {
	return uint8(d)
}

func (d Direction) String() string {
	switch d {
	case Sell:
		return "Sell"
	case Buy:
		return "Buy"
	default:
		return "Unknown"
	}
}
