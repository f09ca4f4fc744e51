// Package services provides domain services that work across records rather
// than inside a single aggregate.
//
// The package includes:
//   - IndexAuditor: checks the secondary indexes of a record kind against the
//     records they point to
package services
