package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Hours applies the scheduling rules to an already payload-valid
// reservation: no reservations in the past, none on a closed day and
// none outside the daily seating window.  The caller supplies "now"
// so the check is deterministic under test; the reservation's wall
// clock is interpreted in now's location.
func Hours(r *model.Reservation, cfg config.HoursConfig, now time.Time) error {
	at, err := time.ParseInLocation("2006-01-02 15:04:05", r.ReservationDate+" "+r.ReservationTime, now.Location())
	if err != nil {
		return fmt.Errorf("%q is not a valid date and time", r.ReservationDate+" "+r.ReservationTime)
	}

	if !at.After(now) {
		return fmt.Errorf("reservation must be in the future")
	}

	if name, closed := cfg.ClosedDays[at.Weekday()]; closed {
		return fmt.Errorf("%s", closedDaySentence(name, cfg.ClosedDayNames()))
	}

	mins := at.Hour()*60 + at.Minute()
	if mins < cfg.Open || mins > cfg.LastSeating {
		return fmt.Errorf("reservation time must be between %s and %s", cfg.OpenClock(), cfg.LastSeatingClock())
	}
	return nil
}

// closedDaySentence phrases the closed-day rejection.  The selected
// day is named, then every closed day is enumerated with plural "s"
// appended to each name: one day reads "closed on Tuesdays.", two
// read "closed on As and Bs.", three or more use the Oxford comma,
// "closed on As, Bs, and Cs.".
func closedDaySentence(selected string, all []string) string {
	var list string
	switch len(all) {
	case 1:
		list = all[0] + "s"
	case 2:
		list = all[0] + "s and " + all[1] + "s"
	default:
		var b strings.Builder
		for i, name := range all {
			if i == len(all)-1 {
				b.WriteString("and " + name + "s")
			} else {
				b.WriteString(name + "s, ")
			}
		}
		list = b.String()
	}
	return "The date you have selected is a " + selected + ". The restaurant is closed on " + list + "."
}
