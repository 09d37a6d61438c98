package slot

import (
	"fmt"
	"slices"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
)

// Rand is the random source for slot times. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

const (
	defaultPeakProbability = 60
	maxRandomAttempts      = 64

	editWindowFirstHour = 9
	editWindowLastHour  = 17
	maxEditAgeDays      = 7
)

var defaultPeakHours = []int{9, 10, 11, 13, 14, 19, 20}

// Generator places publication times within business hours of a day.
//
// It remembers every second of the day it has handed out until
// ResetUsedTimestamps is called, so one instance must only be used for one
// day at a time. Concurrent workers each need their own Generator.
type Generator struct {
	rng             Rand
	clock           calendar.Clock
	firstHour       int
	lastHour        int
	peakHours       []int
	peakProbability int
	used            map[int]struct{}
}

type Option func(*Generator)

func WithClock(c calendar.Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithBusinessHours narrows the publishing hours. Values outside the
// allowed 7-22 range are clamped.
func WithBusinessHours(first, last int) Option {
	return func(g *Generator) {
		first = max(first, domain.FirstPublishHour)
		last = min(last, domain.LastPublishHour)
		if first <= last {
			g.firstHour = first
			g.lastHour = last
		}
	}
}

func WithPeakHours(hours ...int) Option {
	return func(g *Generator) {
		g.peakHours = slices.Clone(hours)
	}
}

// WithPeakProbability sets the percentage of slots drawn from peak hours.
func WithPeakProbability(percent int) Option {
	return func(g *Generator) {
		g.peakProbability = min(max(percent, 0), 100)
	}
}

func NewGenerator(rng Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:             rng,
		clock:           calendar.SystemClock(),
		firstHour:       domain.FirstPublishHour,
		lastHour:        domain.LastPublishHour,
		peakHours:       slices.Clone(defaultPeakHours),
		peakProbability: defaultPeakProbability,
		used:            make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.peakHours = slices.DeleteFunc(g.peakHours, func(h int) bool {
		return h < g.firstHour || h > g.lastHour
	})

	return g
}

// ResetUsedTimestamps forgets the times handed out so far. Call it before
// generating each new day.
func (g *Generator) ResetUsedTimestamps() {
	clear(g.used)
}

func (g *Generator) UsedCount() int {
	return len(g.used)
}

// GenerateDaySchedule returns importedCount+newCount slots on day, sorted by
// time, with no two slots sharing a timestamp.
func (g *Generator) GenerateDaySchedule(day time.Time, importedCount, newCount int) ([]domain.ScheduleSlot, error) {
	importedCount = max(importedCount, 0)
	newCount = max(newCount, 0)
	total := importedCount + newCount

	if !calendar.IsBusinessDay(day) {
		return nil, fmt.Errorf("%w: %s is a %s", domain.ErrInvalidSlotTime, day.Format(time.DateOnly), day.Weekday())
	}

	if free := g.spanSeconds() - len(g.used); total > free {
		return nil, fmt.Errorf("%w: %d requested, %d free on %s", domain.ErrDayCapacityExceeded, total, free, day.Format(time.DateOnly))
	}

	slots := make([]domain.ScheduleSlot, 0, total)
	for i := 0; i < total; i++ {
		classification := domain.ClassificationNew
		if i < importedCount {
			classification = domain.ClassificationImported
		}

		ts, err := g.nextTimestamp(day)
		if err != nil {
			return nil, err
		}
		slot, err := domain.NewScheduleSlot(ts, classification, g.isPeakHour(ts.Hour()))
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	slices.SortFunc(slots, func(a, b domain.ScheduleSlot) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return slots, nil
}

// GenerateHumanizedUpdatedAt returns a plausible last-edit time. New
// articles are touched shortly after publication; imported ones at some
// office hour within the last week.
func (g *Generator) GenerateHumanizedUpdatedAt(slot domain.ScheduleSlot) time.Time {
	if slot.Classification.IsNew() {
		return slot.Timestamp.
			Add(time.Duration(1+g.rng.IntN(30)) * time.Minute).
			Add(time.Duration(1+g.rng.IntN(59)) * time.Second)
	}

	now := g.clock.Now()
	d := now.AddDate(0, 0, -g.rng.IntN(maxEditAgeDays+1))
	hour := editWindowFirstHour + g.rng.IntN(editWindowLastHour-editWindowFirstHour+1)

	edited := time.Date(d.Year(), d.Month(), d.Day(), hour, g.rng.IntN(60), g.rng.IntN(60), 0, now.Location())
	if edited.After(now) {
		edited = edited.AddDate(0, 0, -1)
	}
	return edited
}

func (g *Generator) spanSeconds() int {
	return (g.lastHour - g.firstHour + 1) * 3600
}

func (g *Generator) isPeakHour(hour int) bool {
	return slices.Contains(g.peakHours, hour)
}

// nextTimestamp claims a free second of the day. Random picks are tried
// first; on a crowded day it falls back to scanning from a random point.
func (g *Generator) nextTimestamp(day time.Time) (time.Time, error) {
	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		sec := g.randomSecondOfDay()
		if g.claim(sec) {
			return atSecond(day, sec), nil
		}
	}

	span := g.spanSeconds()
	from := g.rng.IntN(span)
	for i := 0; i < span; i++ {
		sec := g.firstHour*3600 + (from+i)%span
		if g.claim(sec) {
			return atSecond(day, sec), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s", domain.ErrDayCapacityExceeded, day.Format(time.DateOnly))
}

func (g *Generator) randomSecondOfDay() int {
	hour := g.firstHour + g.rng.IntN(g.lastHour-g.firstHour+1)
	if len(g.peakHours) > 0 && g.rng.IntN(100) < g.peakProbability {
		hour = g.peakHours[g.rng.IntN(len(g.peakHours))]
	}
	return hour*3600 + g.rng.IntN(60)*60 + g.rng.IntN(60)
}

func (g *Generator) claim(sec int) bool {
	if _, taken := g.used[sec]; taken {
		return false
	}
	g.used[sec] = struct{}{}
	return true
}

func atSecond(day time.Time, sec int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, sec/3600, (sec%3600)/60, sec%60, 0, day.Location())
}
