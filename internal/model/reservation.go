package model

// Reservation records a party's booking for a given service date and
// time.  A reservation is created in the "booked" state and moves
// through the status lifecycle defined in status.go.  The date and
// time are kept as the canonical wire strings ("YYYY-MM-DD" and
// "HH:MM:SS") so that what the validator accepted is exactly what is
// persisted and returned.
//
// Fields:
//  ID              – primary key identifier.
//  FirstName       – guest's first name.
//  LastName        – guest's last name.
//  MobileNumber    – contact phone number, free-form text.
//  ReservationDate – calendar date of the reservation (YYYY-MM-DD).
//  ReservationTime – time of day of the reservation (HH:MM:SS).
//  People          – party size, always >= 1.
//  Status          – lifecycle status (see status.go).
type Reservation struct {
	ID              uint64 `json:"reservation_id"`   // reservations.id
	FirstName       string `json:"first_name"`       // reservations.first_name
	LastName        string `json:"last_name"`        // reservations.last_name
	MobileNumber    string `json:"mobile_number"`    // reservations.mobile_number
	ReservationDate string `json:"reservation_date"` // reservations.reservation_date
	ReservationTime string `json:"reservation_time"` // reservations.reservation_time
	People          int    `json:"people"`           // reservations.people
	Status          string `json:"status"`           // reservations.status
}
