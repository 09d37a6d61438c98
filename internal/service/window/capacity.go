package window

import (
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
)

// DailyCap is the per-day ceiling used for capacity math.
func (w *Window) DailyCap() int {
	return min(w.maxPerDay, w.policy.SoftMaxPerDay)
}

func (w *Window) MinCapacity() int {
	return len(w.businessDays) * min(w.minPerDay, w.policy.SoftMaxPerDay)
}

func (w *Window) MaxCapacity() int {
	return len(w.businessDays) * w.DailyCap()
}

// Extend returns a window with enough business days to hold totalItems at
// DailyCap per day. The receiver is returned unchanged when it already fits.
func (w *Window) Extend(totalItems int) *Window {
	if totalItems <= w.MaxCapacity() {
		return w
	}

	daysNeeded := ceilDiv(totalItems, w.DailyCap())
	if daysNeeded <= len(w.businessDays) {
		return w
	}

	return w.withEnd(calendar.AdvanceBusinessDays(w.start, daysNeeded))
}
