// Package repository defines error values that are reused across multiple
// repositories.  These sentinels let handlers distinguish failure
// scenarios without string matching: a missing row, a seating attempted
// against an occupied table, a release of a free table, or a status
// change against a reservation that already reached a terminal state.
// The occupancy sentinels double as the client-facing message, so their
// text is part of the API contract.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists for the
// requested identifier.  Handlers translate this into HTTP 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when no table exists for the requested
// identifier.  Handlers translate this into HTTP 404.
var ErrTableNotFound = errors.New("table not found")

// ErrTableOccupied is returned when a seating is attempted against a
// table that already has a party, including when a concurrent seating
// wins the compare-and-set.  Handlers translate this into HTTP 400.
var ErrTableOccupied = errors.New("table is currently occupied")

// ErrTableNotOccupied is returned when a release is attempted against a
// table that has no seated party, including a second release of the
// same table.  Handlers translate this into HTTP 400.
var ErrTableNotOccupied = errors.New("table is not occupied, cannot be unseated")

// ErrTerminalStatus is returned when a status change is attempted on a
// reservation that is already finished or cancelled, including when a
// concurrent update moved it there first.  Handlers translate this
// into HTTP 400.
var ErrTerminalStatus = errors.New("a finished or cancelled reservation cannot be updated")

// ErrReservationSeated is returned when a seating is attempted for a
// reservation that is not in the booked state, enforcing at most one
// active seating per reservation.  Handlers translate this into HTTP 400.
var ErrReservationSeated = errors.New("reservation is already seated")
