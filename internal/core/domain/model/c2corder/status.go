package c2corder

import (
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Status is the lifecycle state of a c2c order. The numeric values are the
// wire codes.
type Status uint8

const (
	Pending Status = iota
	Paid
	Delivered
	Notarizing
	Cancelled
	Completed
)

var statusNames = map[Status]string{
	Pending:    "Pending",
	Paid:       "Paid",
	Delivered:  "Delivered",
	Notarizing: "Notarizing",
	Cancelled:  "Cancelled",
	Completed:  "Completed",
}

var transitions = kernel.NewTransitionTable(map[Status][]Status{
	Pending:    {Paid, Cancelled, Notarizing},
	Paid:       {Delivered, Cancelled, Notarizing},
	Delivered:  {Completed, Notarizing},
	Notarizing: {Completed, Cancelled},
})

// Statuses lists every status in code order.
func Statuses() []Status {
	return []Status{Pending, Paid, Delivered, Notarizing, Cancelled, Completed}
}

// StatusFromCode decodes a wire code, failing with a StatusIsInvalidError for
// codes outside 0..5.
func StatusFromCode(code uint8) (Status, error) {
	s := Status(code)
	if _, ok := statusNames[s]; !ok {
		return 0, errs.NewStatusIsInvalidError("c2c order status", code)
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

// Validate rejects values outside the enumeration, e.g. from a corrupted record.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewStatusIsInvalidError("c2c order status", uint8(s))
	}
	return nil
}

// CanTransitionTo reports whether s -> to is allowed.
func (s Status) CanTransitionTo(to Status) bool {
	return transitions.Allows(s, to)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return transitions.IsTerminal(s)
}
