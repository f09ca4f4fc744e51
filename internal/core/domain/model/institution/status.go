package institution

import (
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Status is the certification state of an institution.
//
//	NotCertified <──> Certified
//	      │               │
//	      └──> Deactivated <┘
type Status uint8

const (
	Certified Status = iota
	NotCertified
	Deactivated
)

// DefaultStatus is assigned on registration.
const DefaultStatus = NotCertified

var statusNames = map[Status]string{
	Certified:    "Certified",
	NotCertified: "NotCertified",
	Deactivated:  "Deactivated",
}

var transitions = kernel.NewTransitionTable(map[Status][]Status{
	NotCertified: {Certified, Deactivated},
	Certified:    {NotCertified, Deactivated},
})

func Statuses() []Status {
	return []Status{Certified, NotCertified, Deactivated}
}

func StatusFromCode(code uint8) (Status, error) {
	s := Status(code)
	if _, ok := statusNames[s]; !ok {
		return 0, errs.NewStatusIsInvalidError("institution status", code)
	}
	return s, nil
}

func (s Status) Code() uint8 {
	return uint8(s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
