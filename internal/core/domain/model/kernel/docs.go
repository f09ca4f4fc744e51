// Package kernel provides the primitives shared by every record kind.
//
// The package includes:
//   - BoundedID: a byte string with a maximum length, used for record keys and grouping keys
//   - AccountID: the caller identity that creates and mutates records
//   - Timestamp: a logical clock value assigned on creation and every accepted mutation
//   - TransitionTable: an explicit directed graph over a closed set of statuses
//   - Authorizer: the injected ownership check run before every mutation
//   - Event and AggregateRoot: domain events raised by aggregates and published after commit
//   - Availability: the listing status shared by tokens and products
//
// Values are immutable and safe for concurrent use.
package kernel
