package window

import (
	"math"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
)

// Rand is the random source for daily draws. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

const (
	bandLowerFactor = 0.7
	bandUpperFactor = 1.3
)

// Front- and mid-week days carry more load, Friday less.
var weekdayMultipliers = map[time.Weekday]float64{
	time.Monday:    1.05,
	time.Tuesday:   1.15,
	time.Wednesday: 1.10,
	time.Thursday:  1.00,
	time.Friday:    0.85,
}

func WeekdayMultiplier(wd time.Weekday) float64 {
	if m, ok := weekdayMultipliers[wd]; ok {
		return m
	}
	return 1.0
}

// Distribution is the result of spreading items over a window.
type Distribution struct {
	Allocations []domain.DailyAllocation
	// Window is the window the allocations were made against, grown when
	// capacity was short or extra days were appended.
	Window *Window
	// Extended is set when the window grew before allocation.
	Extended  bool
	ExtraDays int
}

func (d Distribution) Total() int {
	total := 0
	for _, a := range d.Allocations {
		total += a.Count
	}
	return total
}

// Distribute assigns totalItems to business days. Every item is assigned:
// leftovers from the randomized pass are pushed into spare capacity from
// the last day backward, then into appended business days.
func (w *Window) Distribute(totalItems int, rng Rand) Distribution {
	if totalItems <= 0 {
		return Distribution{Window: w}
	}

	grown := w.Extend(totalItems)
	result := Distribution{
		Window:   grown,
		Extended: grown != w,
	}

	soft := grown.policy.SoftMaxPerDay
	days := grown.businessDays
	allocations := make([]domain.DailyAllocation, 0, len(days))
	remaining := totalItems

	for i, day := range days {
		if remaining <= 0 {
			break
		}

		var count int
		if i == len(days)-1 {
			count = min(remaining, soft)
		} else {
			count = grown.drawDailyCount(day, remaining, len(days)-i, rng)
		}

		allocations = append(allocations, domain.NewDailyAllocation(day, count, soft, false))
		remaining -= count
	}

	if remaining > 0 {
		allocations, grown, result.ExtraDays = grown.redistribute(allocations, remaining)
		result.Window = grown
	}

	result.Allocations = allocations
	return result
}

// drawDailyCount picks a random count within a band around the weekday
// adjusted average of what is left.
func (w *Window) drawDailyCount(day time.Time, remaining, daysLeft int, rng Rand) int {
	soft := w.policy.SoftMaxPerDay

	avg := float64(remaining) / float64(daysLeft)
	adjusted := avg * WeekdayMultiplier(day.Weekday())

	lower := max(w.minPerDay, int(math.Floor(adjusted*bandLowerFactor)))
	upper := min(soft, int(math.Ceil(adjusted*bandUpperFactor)))
	// A min above the computed upper bound widens the band down to upper
	// instead of rejecting the day.
	if lower > upper {
		lower, upper = upper, lower
	}

	count := lower + rng.IntN(upper-lower+1)
	count = min(count, remaining, soft)
	return max(count, 1)
}

// redistribute places remaining items first into spare capacity of the
// existing allocations, walking backward, then onto new business days
// appended after the window.
func (w *Window) redistribute(allocations []domain.DailyAllocation, remaining int) ([]domain.DailyAllocation, *Window, int) {
	soft := w.policy.SoftMaxPerDay

	for i := len(allocations) - 1; i >= 0 && remaining > 0; i-- {
		spare := soft - allocations[i].Count
		if spare <= 0 {
			continue
		}
		add := min(spare, remaining)
		allocations[i].Count += add
		allocations[i].IsPeakCapacity = domain.IsPeak(allocations[i].Count, soft)
		remaining -= add
	}

	grown := w
	extraDays := 0
	last := w.end
	for remaining > 0 {
		last = calendar.NextBusinessDay(calendar.StartOfDay(last).AddDate(0, 0, 1))
		count := min(remaining, soft)
		allocations = append(allocations, domain.NewDailyAllocation(last, count, soft, true))
		remaining -= count
		extraDays++
		grown = grown.withEnd(last)
	}

	return allocations, grown, extraDays
}
