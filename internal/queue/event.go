// Package queue defines message payloads exchanged over the message broker.
package queue

// Seating actions carried in SeatingEvent.Action.
const (
	ActionSeated   = "seated"
	ActionReleased = "released"
)

// SeatingEvent is published whenever a table's occupancy changes: a
// party is seated at a table or a table is released.  It carries enough
// information for downstream consumers to log or notify without
// querying the primary database.
type SeatingEvent struct {
	Action          string `json:"action"`
	TableID         uint64 `json:"table_id"`
	TableName       string `json:"table_name"`
	Capacity        int    `json:"capacity"`
	ReservationID   uint64 `json:"reservation_id,omitempty"`
	People          int    `json:"people,omitempty"`
	ReservationDate string `json:"reservation_date,omitempty"`
	ReservationTime string `json:"reservation_time,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}
