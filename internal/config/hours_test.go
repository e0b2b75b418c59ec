package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadHoursConfigDefaults(t *testing.T) {
	t.Setenv("CLOSED_WEEKDAYS", "")
	t.Setenv("OPEN_TIME", "")
	t.Setenv("LAST_SEATING", "")

	h := LoadHoursConfig()
	assert.Equal(t, map[time.Weekday]string{time.Tuesday: "Tuesday"}, h.ClosedDays)
	assert.Equal(t, 10*60+30, h.Open)
	assert.Equal(t, 21*60+30, h.LastSeating)
	assert.Equal(t, "10:30", h.OpenClock())
	assert.Equal(t, "21:30", h.LastSeatingClock())
}

func TestLoadHoursConfigFromEnv(t *testing.T) {
	t.Setenv("CLOSED_WEEKDAYS", "0:Sunday, 1:Monday")
	t.Setenv("OPEN_TIME", "09:00")
	t.Setenv("LAST_SEATING", "23:00")

	h := LoadHoursConfig()
	assert.Equal(t, map[time.Weekday]string{
		time.Sunday: "Sunday",
		time.Monday: "Monday",
	}, h.ClosedDays)
	assert.Equal(t, 9*60, h.Open)
	assert.Equal(t, 23*60, h.LastSeating)
}

func TestParseClosedDaysSkipsMalformed(t *testing.T) {
	got := parseClosedDays("2:Tuesday,bogus,9:Nonday,:NoIndex,3:")
	assert.Equal(t, map[time.Weekday]string{time.Tuesday: "Tuesday"}, got)
}

func TestParseClockFallsBack(t *testing.T) {
	def := 10*60 + 30
	assert.Equal(t, def, parseClock("", def))
	assert.Equal(t, def, parseClock("noon", def))
	assert.Equal(t, def, parseClock("25:00", def))
	assert.Equal(t, def, parseClock("10:75", def))
	assert.Equal(t, 17*60+45, parseClock("17:45", def))
}

func TestClosedDayNamesOrdered(t *testing.T) {
	h := HoursConfig{ClosedDays: map[time.Weekday]string{
		time.Wednesday: "Wednesday",
		time.Sunday:    "Sunday",
		time.Monday:    "Monday",
	}}
	assert.Equal(t, []string{"Sunday", "Monday", "Wednesday"}, h.ClosedDayNames())
}
