package window

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

// lowRand always draws the bottom of the band.
type lowRand struct{}

func (lowRand) IntN(int) int { return 0 }

// highRand always draws the top of the band.
type highRand struct{}

func (highRand) IntN(n int) int { return n - 1 }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func mustWindow(t *testing.T, start time.Time, days, minPerDay, maxPerDay int) *Window {
	t.Helper()
	w, err := ForBusinessDayCount(start, days, minPerDay, maxPerDay, testClock())
	if err != nil {
		t.Fatalf("ForBusinessDayCount() error = %v", err)
	}
	return w
}

func counts(allocations []domain.DailyAllocation) []int {
	out := make([]int, len(allocations))
	for i, a := range allocations {
		out[i] = a.Count
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDistribute_LowDrawsRedistributeBackward(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 6), 5, 50, 80)

	d := w.Distribute(400, lowRand{})

	want := []int{58, 68, 74, 100, 100}
	if got := counts(d.Allocations); !equalInts(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}
	if d.Extended || d.ExtraDays != 0 {
		t.Errorf("Extended = %v, ExtraDays = %d, want false, 0", d.Extended, d.ExtraDays)
	}

	wantPeak := []bool{false, false, false, true, true}
	for i, a := range d.Allocations {
		if a.IsPeakCapacity != wantPeak[i] {
			t.Errorf("allocation[%d].IsPeakCapacity = %v, want %v", i, a.IsPeakCapacity, wantPeak[i])
		}
	}
}

func TestDistribute_HighDrawsLastDayTakesRemainder(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 6), 5, 50, 80)

	d := w.Distribute(400, highRand{})

	want := []int{100, 100, 96, 68, 36}
	if got := counts(d.Allocations); !equalInts(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}
}

func TestDistribute_SingleItem(t *testing.T) {
	w, err := ForItemCount(date(2025, 1, 6), 1, 50, 80, testClock())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := w.Distribute(1, seeded(1))

	if len(d.Allocations) != 1 {
		t.Fatalf("got %d allocations, want 1", len(d.Allocations))
	}
	if d.Allocations[0].Count != 1 {
		t.Errorf("Count = %d, want 1", d.Allocations[0].Count)
	}
	if d.Allocations[0].Weekday != time.Monday {
		t.Errorf("Weekday = %v, want Monday", d.Allocations[0].Weekday)
	}
}

func TestDistribute_ZeroItems(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 6), 5, 50, 80)

	d := w.Distribute(0, seeded(1))
	if len(d.Allocations) != 0 {
		t.Errorf("got %d allocations, want 0", len(d.Allocations))
	}
	if d.Window != w {
		t.Error("Distribute(0) changed the window")
	}
}

func TestDistribute_ExtendsUndersizedWindow(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 6), 5, 50, 80)

	for seed := uint64(0); seed < 50; seed++ {
		d := w.Distribute(500, seeded(seed))

		if !d.Extended {
			t.Fatalf("seed %d: Extended = false, want true", seed)
		}
		if got := d.Window.BusinessDayCount(); got < 7 {
			t.Errorf("seed %d: window has %d days, want >= 7", seed, got)
		}
		if got := d.Total(); got != 500 {
			t.Errorf("seed %d: total = %d, want 500", seed, got)
		}
	}
	if w.BusinessDayCount() != 5 {
		t.Error("Distribute mutated the original window")
	}
}

func TestDistribute_Conservation(t *testing.T) {
	totals := []int{1, 2, 7, 49, 50, 99, 250, 400, 401, 999, 2500}
	limits := []struct{ min, max int }{{50, 80}, {1, 10}, {20, 100}, {100, 120}}

	for _, lim := range limits {
		for _, total := range totals {
			for seed := uint64(0); seed < 20; seed++ {
				w, err := ForItemCount(date(2025, 1, 6), total, lim.min, lim.max, testClock())
				if err != nil {
					// min above the recommended max is rejected; nothing to distribute.
					continue
				}

				d := w.Distribute(total, seeded(seed))

				if got := d.Total(); got != total {
					t.Errorf("min=%d max=%d total=%d seed=%d: sum = %d", lim.min, lim.max, total, seed, got)
				}
				for i, a := range d.Allocations {
					if a.Count < 0 {
						t.Errorf("allocation[%d] negative: %d", i, a.Count)
					}
					if !a.IsExtraDay && a.Count > w.Policy().SoftMaxPerDay {
						t.Errorf("allocation[%d] = %d exceeds soft max", i, a.Count)
					}
					if a.Count == 0 {
						t.Errorf("allocation[%d] is empty", i)
					}
				}
			}
		}
	}
}

func TestDistribute_HighMinNeverExceedsSoftMax(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 6), 5, 110, 120)

	for seed := uint64(0); seed < 20; seed++ {
		d := w.Distribute(500, seeded(seed))
		for i, a := range d.Allocations {
			if a.Count > 100 {
				t.Errorf("seed %d: allocation[%d] = %d exceeds soft max", seed, i, a.Count)
			}
		}
		if got := d.Total(); got != 500 {
			t.Errorf("seed %d: total = %d, want 500", seed, got)
		}
	}
}

func TestDistribute_AllocationsInDateOrderOnBusinessDays(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 9), 8, 50, 80)

	d := w.Distribute(600, seeded(7))
	for i, a := range d.Allocations {
		if a.Weekday == time.Saturday || a.Weekday == time.Sunday {
			t.Errorf("allocation[%d] on %v", i, a.Weekday)
		}
		if i > 0 && !a.Date.After(d.Allocations[i-1].Date) {
			t.Errorf("allocation[%d] %v not after %v", i, a.Date, d.Allocations[i-1].Date)
		}
	}
}

func TestRedistribute_AppendsExtraDays(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 9), 2, 50, 80) // Thu, Fri

	full := []domain.DailyAllocation{
		domain.NewDailyAllocation(date(2025, 1, 9), 100, 100, false),
		domain.NewDailyAllocation(date(2025, 1, 10), 100, 100, false),
	}

	allocations, grown, extra := w.redistribute(full, 150)

	if extra != 2 {
		t.Fatalf("extra = %d, want 2", extra)
	}
	if got := counts(allocations); !equalInts(got, []int{100, 100, 100, 50}) {
		t.Errorf("counts = %v", got)
	}
	if !allocations[2].Date.Equal(date(2025, 1, 13)) || !allocations[3].Date.Equal(date(2025, 1, 14)) {
		t.Errorf("extra days = %v, %v; want Mon 13th and Tue 14th", allocations[2].Date, allocations[3].Date)
	}
	if !allocations[2].IsExtraDay || !allocations[3].IsExtraDay {
		t.Error("appended allocations not flagged as extra days")
	}
	if got := grown.BusinessDayCount(); got != 4 {
		t.Errorf("grown window has %d business days, want 4", got)
	}
	if want := time.Date(2025, 1, 14, 23, 59, 59, 0, time.UTC); !grown.End().Equal(want) {
		t.Errorf("grown End() = %v, want %v", grown.End(), want)
	}
	if w.BusinessDayCount() != 2 {
		t.Error("redistribute mutated the receiver")
	}
}

func TestRedistribute_FillsSpareBeforeAppending(t *testing.T) {
	w := mustWindow(t, date(2025, 1, 6), 3, 50, 80)

	partial := []domain.DailyAllocation{
		domain.NewDailyAllocation(date(2025, 1, 6), 60, 100, false),
		domain.NewDailyAllocation(date(2025, 1, 7), 80, 100, false),
		domain.NewDailyAllocation(date(2025, 1, 8), 95, 100, false),
	}

	allocations, grown, extra := w.redistribute(partial, 30)

	if extra != 0 || grown != w {
		t.Errorf("extra = %d, grown changed = %v; want no growth", extra, grown != w)
	}
	if got := counts(allocations); !equalInts(got, []int{65, 100, 100}) {
		t.Errorf("counts = %v, want [65 100 100]", got)
	}
	if !allocations[1].IsPeakCapacity {
		t.Error("allocation[1] should be peak after filling")
	}
}

func TestWeekdayMultiplier(t *testing.T) {
	tests := map[time.Weekday]float64{
		time.Monday:    1.05,
		time.Tuesday:   1.15,
		time.Wednesday: 1.10,
		time.Thursday:  1.00,
		time.Friday:    0.85,
		time.Saturday:  1.00,
	}
	for wd, want := range tests {
		if got := WeekdayMultiplier(wd); got != want {
			t.Errorf("WeekdayMultiplier(%v) = %v, want %v", wd, got, want)
		}
	}
}
