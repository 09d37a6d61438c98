package window

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
)

// Window is an inclusive range of business days with per-day throughput
// bounds. It is immutable: growing a window returns a new value.
type Window struct {
	start        time.Time
	end          time.Time
	minPerDay    int
	maxPerDay    int
	policy       Policy
	businessDays []time.Time
}

// New validates the range and limits. Start is normalized to 00:00:00 and
// end to 23:59:59 in the location of start.
func New(start, end time.Time, minPerDay, maxPerDay int, opts ...Option) (*Window, error) {
	o := buildOptions(opts)

	start = calendar.StartOfDay(start)
	end = calendar.EndOfDay(end.In(start.Location()))

	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", domain.ErrInvalidWindow,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	today := calendar.StartOfDay(o.clock.Now().In(start.Location()))
	if start.Before(today) {
		return nil, fmt.Errorf("%w: start %s is before today %s", domain.ErrInvalidWindow,
			start.Format(time.DateOnly), today.Format(time.DateOnly))
	}

	if span := calendar.DaysBetween(start, end); span > o.policy.MaxSpanDays {
		return nil, fmt.Errorf("%w: span of %d days exceeds %d", domain.ErrInvalidWindow, span, o.policy.MaxSpanDays)
	}

	if err := validateLimits(minPerDay, maxPerDay, o.policy); err != nil {
		return nil, err
	}

	days := calendar.BusinessDaysBetween(start, end)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no business days between %s and %s", domain.ErrInvalidWindow,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	return &Window{
		start:        start,
		end:          end,
		minPerDay:    minPerDay,
		maxPerDay:    maxPerDay,
		policy:       o.policy,
		businessDays: days,
	}, nil
}

func validateLimits(minPerDay, maxPerDay int, policy Policy) error {
	if minPerDay <= 0 || maxPerDay <= 0 {
		return fmt.Errorf("%w: min %d and max %d must be positive", domain.ErrInvalidLimits, minPerDay, maxPerDay)
	}
	if minPerDay > maxPerDay {
		return fmt.Errorf("%w: min %d exceeds max %d", domain.ErrInvalidLimits, minPerDay, maxPerDay)
	}
	if maxPerDay > policy.AbsoluteMaxPerDay {
		return fmt.Errorf("%w: max %d exceeds absolute ceiling %d", domain.ErrInvalidLimits, maxPerDay, policy.AbsoluteMaxPerDay)
	}
	return nil
}

// ForBusinessDayCount builds a window covering n business days beginning on
// start, or the Monday after when start falls on a weekend.
func ForBusinessDayCount(start time.Time, n, minPerDay, maxPerDay int, opts ...Option) (*Window, error) {
	first := calendar.NextBusinessDay(calendar.StartOfDay(start))
	end := calendar.AdvanceBusinessDays(first, n)
	return New(first, end, minPerDay, maxPerDay, opts...)
}

// ForItemCount sizes a window so totalItems fit at the recommended daily
// maximum. The window's max becomes min(maxPerDay, recommended).
func ForItemCount(start time.Time, totalItems, minPerDay, maxPerDay int, opts ...Option) (*Window, error) {
	o := buildOptions(opts)

	if maxPerDay > o.policy.AbsoluteMaxPerDay {
		return nil, fmt.Errorf("%w: max %d exceeds absolute ceiling %d", domain.ErrInvalidLimits, maxPerDay, o.policy.AbsoluteMaxPerDay)
	}

	effectiveMax := min(maxPerDay, o.policy.RecommendedMaxPerDay)
	if effectiveMax <= 0 {
		return nil, fmt.Errorf("%w: max %d must be positive", domain.ErrInvalidLimits, maxPerDay)
	}

	daysNeeded := max(1, ceilDiv(totalItems, effectiveMax))
	if daysNeeded > o.policy.MaxSpanDays {
		return nil, fmt.Errorf("%w: %d items need %d business days, span limit is %d days", domain.ErrInvalidWindow,
			totalItems, daysNeeded, o.policy.MaxSpanDays)
	}

	return ForBusinessDayCount(start, daysNeeded, minPerDay, effectiveMax, opts...)
}

func (w *Window) Start() time.Time {
	return w.start
}

func (w *Window) End() time.Time {
	return w.end
}

func (w *Window) MinPerDay() int {
	return w.minPerDay
}

func (w *Window) MaxPerDay() int {
	return w.maxPerDay
}

func (w *Window) Policy() Policy {
	return w.policy
}

// BusinessDays returns a copy of the business days in the window.
func (w *Window) BusinessDays() []time.Time {
	days := make([]time.Time, len(w.businessDays))
	copy(days, w.businessDays)
	return days
}

func (w *Window) BusinessDayCount() int {
	return len(w.businessDays)
}

// ExceedsSoftMax reports whether maxPerDay is above the recommended ceiling.
// This is accepted but callers should log it.
func (w *Window) ExceedsSoftMax() bool {
	return w.maxPerDay > w.policy.SoftMaxPerDay
}

// withEnd returns a copy ending on the day of end, with business days
// recomputed.
func (w *Window) withEnd(end time.Time) *Window {
	grown := *w
	grown.end = calendar.EndOfDay(end)
	grown.businessDays = calendar.BusinessDaysBetween(grown.start, grown.end)
	return &grown
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
