package kernel

import (
	"fmt"
	"slices"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// State is a status value that can appear in a TransitionTable.
type State interface {
	comparable
	fmt.Stringer
}

// TransitionTable is an explicit directed graph over the statuses of one record
// kind. A status change is legal exactly when its edge is listed; there are no
// wildcards and self-transitions must be listed to be allowed.
type TransitionTable[S State] struct {
	edges map[S][]S
}

// NewTransitionTable copies edges so later changes to the map do not leak in.
func NewTransitionTable[S State](edges map[S][]S) TransitionTable[S] {
	copied := make(map[S][]S, len(edges))
	for from, to := range edges {
		copied[from] = slices.Clone(to)
	}
	return TransitionTable[S]{edges: copied}
}

// Allows reports whether from -> to is an edge of the table.
func (t TransitionTable[S]) Allows(from, to S) bool {
	return slices.Contains(t.edges[from], to)
}

// Validate returns a TransitionIsInvalidError for any unlisted pair.
func (t TransitionTable[S]) Validate(from, to S) error {
	if !t.Allows(from, to) {
		return errs.NewTransitionIsInvalidError(from.String(), to.String())
	}
	return nil
}

// Targets lists the statuses reachable from from in one step.
func (t TransitionTable[S]) Targets(from S) []S {
	return slices.Clone(t.edges[from])
}

// IsTerminal reports whether no edge leaves s.
func (t TransitionTable[S]) IsTerminal(s S) bool {
	return len(t.edges[s]) == 0
}
