// Package ulidgen mints ULIDs for ambient correlation ids. The matching
// core never assigns order ids itself (spec.md §6: the transport layer owns
// the monotonic counter), so these ids are never used for orders. No other
// package in this repository calls New: Snapshot and the published trade
// frames carry no ULID field.
package ulidgen

import "github.com/oklog/ulid/v2"

// New mints a new, lexicographically sortable ULID string.
func New() string {
	return ulid.Make().String()
}
