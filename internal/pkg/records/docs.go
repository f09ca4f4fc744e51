// Package records implements the record store and the index manager on top of
// a transactional key-value backend.
//
// Layout:
//
//	Type.<kind>            primary key -> encoded record
//	Index.<kind>.<prop>    grouping key -> encoded ordered list of primary keys
//
// Every operation runs inside the Tx handed to it. Nothing is visible to other
// transactions until that Tx commits, so a command that fails half way leaves
// the store untouched once its transaction is rolled back.
package records
