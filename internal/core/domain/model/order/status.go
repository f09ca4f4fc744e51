package order

import (
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. Values are wire codes.
type Status uint8

const (
	// Pending is the initial status; the buyer has not paid yet.
	Pending Status = iota

	// Paid orders await shipment.
	Paid

	// Delivered orders have been shipped and received.
	Delivered

	// Cancelled is terminal.
	Cancelled

	// Completed orders can still be refunded.
	Completed

	// Refunded is terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:   "Pending",
		Paid:      "Paid",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Completed: "Completed",
		Refunded:  "Refunded",
	}
}

var transitions = kernel.NewTransitionTable(map[Status][]Status{
	Pending:   {Paid, Cancelled},
	Paid:      {Delivered, Refunded, Cancelled},
	Delivered: {Completed},
	Completed: {Refunded},
})

// Statuses lists every status in code order.
func Statuses() []Status {
	return []Status{Pending, Paid, Delivered, Cancelled, Completed, Refunded}
}

// StatusFromCode decodes a wire code.
func StatusFromCode(code uint8) (Status, error) {
	s := Status(code)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Validate checks that s is one of the six known statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewStatusIsInvalidError("order status", uint8(s))
	}
	return nil
}

func (s Status) Code() uint8 {
	return uint8(s)
}

// String implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Transition returns to when s -> to is an edge of the order table.
func (s Status) Transition(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}
	if err := transitions.Validate(s, to); err != nil {
		return 0, err
	}
	return to, nil
}

// Cancel transitions to Cancelled. Only Pending and Paid orders can be
// cancelled by their owner.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Paid {
		return 0, errs.NewTransitionIsInvalidError(s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
