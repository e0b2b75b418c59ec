// Package validate checks inbound reservation and table payloads before
// anything touches the database.  Payloads arrive as decoded JSON objects
// (map[string]any) so that unknown fields and wrong runtime types can be
// reported precisely; on success the functions return a typed model value
// carrying exactly the accepted data.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// reservationFields is the closed set of fields a reservation payload
// may carry.  Anything else is rejected by unknownFields.
var reservationFields = map[string]bool{
	"first_name":       true,
	"last_name":        true,
	"mobile_number":    true,
	"reservation_date": true,
	"reservation_time": true,
	"people":           true,
	"status":           true,
}

// tableFields is the closed set of fields a table payload may carry.
var tableFields = map[string]bool{
	"table_name": true,
	"capacity":   true,
	"occupied":   true,
}

// Reservation validates a reservation creation payload and returns the
// typed reservation (status forced to booked) or an error whose message
// is suitable to return to the client verbatim.  Checks run in a fixed
// order: unknown fields, required fields, formats, party size, status.
func Reservation(data map[string]any) (*model.Reservation, error) {
	if err := unknownFields(data, reservationFields); err != nil {
		return nil, err
	}
	for _, f := range []string{"first_name", "last_name", "mobile_number", "reservation_date", "reservation_time", "people"} {
		if isFalsy(data[f]) {
			return nil, fmt.Errorf("field %q required", f)
		}
	}

	firstName, err := stringField(data, "first_name")
	if err != nil {
		return nil, err
	}
	lastName, err := stringField(data, "last_name")
	if err != nil {
		return nil, err
	}
	mobile, err := stringField(data, "mobile_number")
	if err != nil {
		return nil, err
	}

	date, err := stringField(data, "reservation_date")
	if err != nil {
		return nil, err
	}
	if !dateRe.MatchString(date) {
		return nil, fmt.Errorf("reservation_date %q is not a valid date", date)
	}
	clock, err := stringField(data, "reservation_time")
	if err != nil {
		return nil, err
	}
	if !timeRe.MatchString(clock) {
		return nil, fmt.Errorf("reservation_time %q is not a valid time", clock)
	}
	// HH:MM is normalized to HH:MM:SS so the stored value is canonical.
	if len(clock) == 5 {
		clock += ":00"
	}
	if _, err := time.Parse("2006-01-02 15:04:05", date+" "+clock); err != nil {
		return nil, fmt.Errorf("%q is not a valid date and time", date+" "+clock)
	}

	people, err := peopleField(data["people"])
	if err != nil {
		return nil, err
	}

	// Clients cannot create a reservation in any state other than booked.
	if s, ok := data["status"]; ok && !isFalsy(s) {
		if str, isStr := s.(string); !isStr || str != model.StatusBooked {
			return nil, fmt.Errorf("status %v is not allowed for a new reservation", s)
		}
	}

	return &model.Reservation{
		FirstName:       firstName,
		LastName:        lastName,
		MobileNumber:    mobile,
		ReservationDate: date,
		ReservationTime: clock,
		People:          people,
		Status:          model.StatusBooked,
	}, nil
}

// Table validates a table creation payload and returns the typed table
// or a client-ready error.
func Table(data map[string]any) (*model.Table, error) {
	if err := unknownFields(data, tableFields); err != nil {
		return nil, err
	}
	for _, f := range []string{"table_name", "capacity"} {
		if isFalsy(data[f]) {
			return nil, fmt.Errorf("field %q required", f)
		}
	}

	name, err := stringField(data, "table_name")
	if err != nil {
		return nil, err
	}
	if len([]rune(name)) < 2 {
		return nil, fmt.Errorf("table_name must be at least 2 characters long")
	}

	capacity, err := wholeNumber(data["capacity"], "capacity")
	if err != nil {
		return nil, err
	}
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	// occupied is optional and coerced: any falsy value means free.
	occupied := false
	if v, ok := data["occupied"]; ok {
		occupied = !isFalsy(v)
	}

	return &model.Table{
		TableName: name,
		Capacity:  capacity,
		Occupied:  occupied,
	}, nil
}

// unknownFields rejects any payload carrying fields outside the allowed
// set, listing every offending name in one message.
func unknownFields(data map[string]any, allowed map[string]bool) error {
	var bad []string
	for k := range data {
		if !allowed[k] {
			bad = append(bad, k)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("invalid field(s): %s", strings.Join(bad, ", "))
}

// isFalsy mirrors the presence check applied to required fields: nil,
// empty string, zero and false all count as missing.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	}
	return false
}

func stringField(data map[string]any, field string) (string, error) {
	s, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", field, data[field])
	}
	return s, nil
}

// peopleField enforces that the party size is a positive integer.  JSON
// numbers decode as float64; integral values are accepted, everything
// else is rejected with the offending runtime type or value.
func peopleField(v any) (int, error) {
	n, err := wholeNumber(v, "people")
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("people must be a positive integer")
	}
	return n, nil
}

func wholeNumber(v any, field string) (int, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%s must be a whole number, got %v", field, t)
		}
		return int(t), nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", field, v)
	}
}
