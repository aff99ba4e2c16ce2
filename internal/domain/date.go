package domain

import "time"

// Dates inside the engine are civil calendar days: time.Time values
// normalized to midnight UTC. Parsing and formatting of user-facing date
// strings happens at the service boundary, never here.

// DateOf truncates a timestamp to its civil day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the civil day n days after d.
func AddDays(d time.Time, n int) time.Time {
	return DateOf(d).AddDate(0, 0, n)
}

// DaysBetween returns the whole-day difference to minus from.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / (24 * time.Hour))
}

// minDate returns the earlier of two days.
func minDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
