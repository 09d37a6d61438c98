package calendar

import "time"

// IsBusinessDay reports whether t falls on Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay moves a weekend date forward to the following Monday.
// Business days are returned unchanged.
func NextBusinessDay(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// AdvanceBusinessDays returns the end of the n-th business day counted from
// from, where from itself (after weekend adjustment) is the first.
func AdvanceBusinessDays(from time.Time, n int) time.Time {
	if n < 1 {
		n = 1
	}

	current := StartOfDay(NextBusinessDay(from))
	counted := 1
	for counted < n {
		current = current.AddDate(0, 0, 1)
		if IsBusinessDay(current) {
			counted++
		}
	}

	return EndOfDay(current)
}

// BusinessDaysBetween lists every business day in [start, end] at midnight.
func BusinessDaysBetween(start, end time.Time) []time.Time {
	first := StartOfDay(start)
	last := StartOfDay(end)
	if first.After(last) {
		return nil
	}

	days := make([]time.Time, 0, DaysBetween(first, last)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// DaysBetween counts calendar days from start to end, ignoring time of day
// and DST shifts.
func DaysBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
