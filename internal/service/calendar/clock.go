package calendar

import "time"

// Clock supplies the current time so "today" can be fixed in tests.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
