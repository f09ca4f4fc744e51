package c2corder

import (
	"fmt"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Direction is the side the member takes in the trade.
type Direction uint8

const (
	UserSell Direction = iota
	UserBuy
)

// DefaultDirection is used when a caller does not pick one.
const DefaultDirection = UserBuy

// DirectionFromCode decodes a wire code. Unknown codes are validation errors.
func DirectionFromCode(code uint8) (Direction, error) {
	switch Direction(code) {
	case UserSell, UserBuy:
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
	case UserSell:
		return "UserSell"
	case UserBuy:
		return "UserBuy"
	default:
		return "Unknown"
	}
}
