package kernel

import (
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Availability is the listing status of tokens and products. Either status may
// be set from either status, including itself.
//
//	Available <──> Unavailable
type Availability uint8

const (
	Available Availability = iota
	Unavailable
)

var availabilityNames = map[Availability]string{
	Available:   "Available",
	Unavailable: "Unavailable",
}

var availabilityTransitions = NewTransitionTable(map[Availability][]Availability{
	Available:   {Available, Unavailable},
	Unavailable: {Available, Unavailable},
})

// AvailabilityFromCode decodes a wire code.
func AvailabilityFromCode(code uint8) (Availability, error) {
	a := Availability(code)
	if _, ok := availabilityNames[a]; !ok {
		return 0, errs.NewStatusIsInvalidError("availability", code)
	}
	return a, nil
}

func (a Availability) Code() uint8 {
	return uint8(a)
}

func (a Availability) String() string {
	if name, ok := availabilityNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Transition validates a -> to against the availability table.
func (a Availability) Transition(to Availability) (Availability, error) {
	if err := availabilityTransitions.Validate(a, to); err != nil {
		return a, err
	}
	return to, nil
}
