package utils

import "time"

// DayBounds returns the inclusive bounds of the calendar day containing t,
// in t's location. The server's timezone is authoritative for day windows.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	return start, end
}
