package window

import (
	"fmt"
	"time"
)

// Window is a UTC calendar-day interval [Start, End). Both bounds are
// midnight-aligned and End-Start is exactly 24 hours.
type Window struct {
	Start time.Time
	End   time.Time
}

// Previous returns the window covering the full UTC day before now.
func Previous(now time.Time) Window {
	utc := now.UTC()
	end := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return Window{
		Start: end.Add(-24 * time.Hour),
		End:   end,
	}
}

// ForDate returns the window covering the given UTC day, date in YYYY-MM-DD form.
func ForDate(date string) (Window, error) {
	start, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("parse export date %q: %w", date, err)
	}
	return Window{
		Start: start,
		End:   start.Add(24 * time.Hour),
	}, nil
}

// Date is the start day in YYYY-MM-DD form, used to name the archive.
func (w Window) Date() string {
	return w.Start.Format("2006-01-02")
}
