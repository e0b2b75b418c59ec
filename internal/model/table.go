package model

// Table describes a physical dining table in the restaurant.  A table
// is either free or occupied by exactly one reservation; the pairing
// is recorded through ReservationID.  The invariant maintained by the
// seating operations is: Occupied == (ReservationID != nil).
//
// Fields:
//  ID            – primary key identifier.
//  TableName     – display name, minimum two characters.
//  Capacity      – number of guests the table seats, always >= 1.
//  Occupied      – whether a party is currently seated.
//  ReservationID – reservation seated at this table, nil when free.
type Table struct {
	ID            uint64  `json:"table_id"`                 // tables.id
	TableName     string  `json:"table_name"`               // tables.table_name
	Capacity      int     `json:"capacity"`                 // tables.capacity
	Occupied      bool    `json:"occupied"`                 // tables.occupied
	ReservationID *uint64 `json:"reservation_id,omitempty"` // tables.reservation_id (nullable)
}
