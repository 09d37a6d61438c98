package domain

import (
	"time"
)

// Article is the caller-owned record being scheduled. Only the fields the
// scheduler needs are carried.
type Article struct {
	ID                  string         `json:"id"`
	Classification      Classification `json:"classification"`
	OriginalCreatedAt   *time.Time     `json:"original_created_at,omitempty"`
	OriginalPublishedAt *time.Time     `json:"original_published_at,omitempty"`
}

// ScheduledArticle carries the timestamps the caller stamps onto its record.
type ScheduledArticle struct {
	ArticleID   string       `json:"article_id"`
	Slot        ScheduleSlot `json:"slot"`
	ScheduledAt time.Time    `json:"scheduled_at"`
	CreatedAt   time.Time    `json:"created_at"`
	PublishedAt time.Time    `json:"published_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type DaySchedule struct {
	Date       time.Time          `json:"date"`
	Allocation DailyAllocation    `json:"allocation"`
	Articles   []ScheduledArticle `json:"articles"`
}

type ScheduleStats struct {
	TotalArticles          int     `json:"total_articles"`
	ImportedArticles       int     `json:"imported_articles"`
	NewArticles            int     `json:"new_articles"`
	WorkingDaysUsed        int     `json:"working_days_used"`
	AvgPerDay              float64 `json:"avg_per_day"`
	MinPerDay              int     `json:"min_per_day"`
	MaxPerDay              int     `json:"max_per_day"`
	DistributionEfficiency float64 `json:"distribution_efficiency"`
	ExtraDays              int     `json:"extra_days"`
}

type Schedule struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Days        []DaySchedule `json:"days"`
	Stats       ScheduleStats `json:"stats"`
}

// Day returns the schedule for the calendar day of date.
func (s *Schedule) Day(date time.Time) (*DaySchedule, bool) {
	key := DayKey(date)
	for i := range s.Days {
		if DayKey(s.Days[i].Date) == key {
			return &s.Days[i], true
		}
	}
	return nil, false
}

func (s *Schedule) Allocations() []DailyAllocation {
	allocations := make([]DailyAllocation, 0, len(s.Days))
	for _, d := range s.Days {
		allocations = append(allocations, d.Allocation)
	}
	return allocations
}

func (s *Schedule) ArticleCount() int {
	total := 0
	for _, d := range s.Days {
		total += len(d.Articles)
	}
	return total
}
