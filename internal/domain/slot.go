package domain

import (
	"fmt"
	"time"
)

const (
	FirstPublishHour = 7
	LastPublishHour  = 22
)

// ScheduleSlot is a single publication time on a business day.
type ScheduleSlot struct {
	Timestamp           time.Time      `json:"timestamp"`
	Classification      Classification `json:"classification"`
	IsPeakHour          bool           `json:"is_peak_hour"`
	Weekday             time.Weekday   `json:"weekday"`
	OriginalCreatedAt   *time.Time     `json:"original_created_at,omitempty"`
	OriginalPublishedAt *time.Time     `json:"original_published_at,omitempty"`
}

type SlotOption func(*ScheduleSlot)

// WithOriginalTimes keeps the source timestamps of an imported article.
// They are dropped for new articles.
func WithOriginalTimes(createdAt, publishedAt *time.Time) SlotOption {
	return func(s *ScheduleSlot) {
		s.OriginalCreatedAt = createdAt
		s.OriginalPublishedAt = publishedAt
	}
}

func NewScheduleSlot(timestamp time.Time, classification Classification, isPeakHour bool, opts ...SlotOption) (ScheduleSlot, error) {
	if h := timestamp.Hour(); h < FirstPublishHour || h > LastPublishHour {
		return ScheduleSlot{}, fmt.Errorf("%w: hour %d outside %d-%d", ErrInvalidSlotTime, h, FirstPublishHour, LastPublishHour)
	}
	if wd := timestamp.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return ScheduleSlot{}, fmt.Errorf("%w: %s is not a business day", ErrInvalidSlotTime, wd)
	}
	if err := classification.Validate(); err != nil {
		return ScheduleSlot{}, err
	}

	slot := ScheduleSlot{
		Timestamp:      timestamp,
		Classification: classification,
		IsPeakHour:     isPeakHour,
		Weekday:        timestamp.Weekday(),
	}
	for _, opt := range opts {
		opt(&slot)
	}
	if classification.IsNew() {
		slot.OriginalCreatedAt = nil
		slot.OriginalPublishedAt = nil
	}

	return slot, nil
}

// WeekdayIndex returns the ISO weekday number (Monday = 1).
func (s ScheduleSlot) WeekdayIndex() int {
	return ISOWeekday(s.Weekday)
}

func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
