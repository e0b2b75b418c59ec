package config

// hours.go defines the operating-hours configuration consumed by the
// reservation validator.  Closed weekdays and the daily seating window
// used to be literals buried in the validation code; carrying them in
// a config value lets each deployment tune them and lets tests build
// arbitrary schedules.

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// HoursConfig describes when new reservations may be scheduled.
// Open and LastSeating are minutes since midnight and both bounds are
// inclusive: a reservation exactly at LastSeating is accepted.
type HoursConfig struct {
	ClosedDays  map[time.Weekday]string // weekday -> display name, e.g. Tuesday
	Open        int                     // first seating, minutes since midnight
	LastSeating int                     // last seating, minutes since midnight
}

// LoadHoursConfig builds an HoursConfig from environment variables,
// falling back to the house defaults: closed on Tuesdays, seatings
// from 10:30 through 21:30.
//
//	CLOSED_WEEKDAYS – comma-separated "index:Name" pairs, 0=Sunday
//	OPEN_TIME       – "HH:MM" first seating
//	LAST_SEATING    – "HH:MM" last seating
func LoadHoursConfig() HoursConfig {
	return HoursConfig{
		ClosedDays:  parseClosedDays(getenv("CLOSED_WEEKDAYS", "2:Tuesday")),
		Open:        parseClock(getenv("OPEN_TIME", "10:30"), 10*60+30),
		LastSeating: parseClock(getenv("LAST_SEATING", "21:30"), 21*60+30),
	}
}

// ClosedDayNames returns the display names of all closed days ordered
// by weekday index, so error messages are deterministic.
func (h HoursConfig) ClosedDayNames() []string {
	idx := make([]int, 0, len(h.ClosedDays))
	for d := range h.ClosedDays {
		idx = append(idx, int(d))
	}
	sort.Ints(idx)
	names := make([]string, 0, len(idx))
	for _, d := range idx {
		names = append(names, h.ClosedDays[time.Weekday(d)])
	}
	return names
}

// OpenClock and LastSeatingClock render the window bounds as "HH:MM"
// for use in error messages.
func (h HoursConfig) OpenClock() string        { return clockString(h.Open) }
func (h HoursConfig) LastSeatingClock() string { return clockString(h.LastSeating) }

func clockString(mins int) string {
	h := mins / 60
	m := mins % 60
	return twoDigits(h) + ":" + twoDigits(m)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// parseClosedDays parses "2:Tuesday,0:Sunday" into a weekday map.
// Malformed entries are skipped rather than failing startup.
func parseClosedDays(s string) map[time.Weekday]string {
	out := map[time.Weekday]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idxStr, name, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil || idx < 0 || idx > 6 {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[time.Weekday(idx)] = name
	}
	return out
}

// parseClock converts "HH:MM" into minutes since midnight, returning
// def when the value does not parse.
func parseClock(s string, def int) int {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return def
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return def
	}
	return h*60 + m
}
