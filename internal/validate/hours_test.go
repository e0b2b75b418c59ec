package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// houseHours mirrors the defaults: closed Tuesdays, seatings 10:30
// through 21:30 inclusive.
func houseHours() config.HoursConfig {
	return config.HoursConfig{
		ClosedDays:  map[time.Weekday]string{time.Tuesday: "Tuesday"},
		Open:        10*60 + 30,
		LastSeating: 21*60 + 30,
	}
}

// fixedNow is a Tuesday at noon UTC.
var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func reservationAt(date, clock string) *model.Reservation {
	return &model.Reservation{
		FirstName:       "Frank",
		LastName:        "Reynolds",
		MobileNumber:    "555-1212",
		ReservationDate: date,
		ReservationTime: clock,
		People:          2,
		Status:          model.StatusBooked,
	}
}

func TestHoursAccepts(t *testing.T) {
	cases := []struct {
		name  string
		date  string
		clock string
	}{
		{"mid window", "2026-09-02", "17:30:00"},   // Wednesday
		{"opening time", "2026-09-02", "10:30:00"}, // inclusive lower bound
		{"last seating", "2026-09-02", "21:30:00"}, // inclusive upper bound
		{"later same day", "2026-09-01", "18:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := houseHours()
			if tc.date == "2026-09-01" {
				// Same-day check needs an open day.
				cfg.ClosedDays = map[time.Weekday]string{}
			}
			assert.NoError(t, Hours(reservationAt(tc.date, tc.clock), cfg, fixedNow))
		})
	}
}

func TestHoursRejectsPast(t *testing.T) {
	cases := []struct {
		name  string
		date  string
		clock string
	}{
		{"yesterday", "2026-08-31", "18:00:00"},
		{"earlier today", "2026-09-01", "11:00:00"},
		{"exactly now", "2026-09-01", "12:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := houseHours()
			cfg.ClosedDays = map[time.Weekday]string{}
			err := Hours(reservationAt(tc.date, tc.clock), cfg, fixedNow)
			require.Error(t, err)
			assert.Equal(t, "reservation must be in the future", err.Error())
		})
	}
}

func TestHoursRejectsClosedDay(t *testing.T) {
	// 2026-09-08 is a Tuesday.
	err := Hours(reservationAt("2026-09-08", "18:00:00"), houseHours(), fixedNow)
	require.Error(t, err)
	assert.Equal(t,
		"The date you have selected is a Tuesday. The restaurant is closed on Tuesdays.",
		err.Error())
}

func TestHoursClosedDayOrderedBeforeWindow(t *testing.T) {
	// On a closed day the closed-day message wins even when the time is
	// also outside the window.
	err := Hours(reservationAt("2026-09-08", "23:00:00"), houseHours(), fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed on Tuesdays")
}

func TestHoursRejectsOutsideWindow(t *testing.T) {
	cases := []struct {
		name  string
		clock string
	}{
		{"before opening", "09:00:00"},
		{"one minute early", "10:29:00"},
		{"after last seating", "22:00:00"},
		{"one minute late", "21:31:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Hours(reservationAt("2026-09-02", tc.clock), houseHours(), fixedNow)
			require.Error(t, err)
			assert.Equal(t, "reservation time must be between 10:30 and 21:30", err.Error())
		})
	}
}

func TestClosedDaySentencePluralization(t *testing.T) {
	two := config.HoursConfig{
		ClosedDays: map[time.Weekday]string{
			time.Sunday:  "Sunday",
			time.Tuesday: "Tuesday",
		},
		Open:        10*60 + 30,
		LastSeating: 21*60 + 30,
	}
	// 2026-09-06 is a Sunday.
	err := Hours(reservationAt("2026-09-06", "18:00:00"), two, fixedNow)
	require.Error(t, err)
	assert.Equal(t,
		"The date you have selected is a Sunday. The restaurant is closed on Sundays and Tuesdays.",
		err.Error())

	three := two
	three.ClosedDays = map[time.Weekday]string{
		time.Sunday:  "Sunday",
		time.Monday:  "Monday",
		time.Tuesday: "Tuesday",
	}
	// 2026-09-07 is a Monday.
	err = Hours(reservationAt("2026-09-07", "18:00:00"), three, fixedNow)
	require.Error(t, err)
	assert.Equal(t,
		"The date you have selected is a Monday. The restaurant is closed on Sundays, Mondays, and Tuesdays.",
		err.Error())
}
