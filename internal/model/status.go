package model

// Reservation status lifecycle.  A reservation starts as booked, is
// seated when a table is assigned, and finished when the table is
// released.  Cancellation is only possible while still booked.
// Finished and cancelled are terminal: no transition leaves them.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// transitions enumerates every permitted status change.  Anything not
// listed here is rejected, including no-op same-status updates.
var transitions = map[string]map[string]bool{
	StatusBooked: {StatusSeated: true, StatusCancelled: true},
	StatusSeated: {StatusFinished: true},
}

// KnownStatus reports whether s is one of the four lifecycle states.
func KnownStatus(s string) bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether a reservation in status s can never
// change again.
func IsTerminal(s string) bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransition reports whether moving a reservation from status
// `from` to status `to` is permitted by the lifecycle.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}
