package schedule

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
)

var (
	testNow   = time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	testStart = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
)

func newTestAssembler(seed uint64) *Assembler {
	n := 0
	return NewAssembler(
		WithClock(calendar.FixedClock(testNow)),
		WithSeed(seed),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func articles(prefix string, n int) []domain.Article {
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = domain.Article{ID: fmt.Sprintf("%s-%d", prefix, i)}
	}
	return out
}

func TestAssembler_Schedule_SmallMix(t *testing.T) {
	a := newTestAssembler(1)

	result, err := a.Schedule(Request{
		Imported:  articles("imp", 3),
		New:       articles("new", 2),
		StartDate: testStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sched := result.Schedule
	if len(sched.Days) != 1 {
		t.Fatalf("got %d days, want 1", len(sched.Days))
	}
	day := sched.Days[0]
	if !day.Date.Equal(testStart) {
		t.Errorf("day = %v, want %v", day.Date, testStart)
	}
	if len(day.Articles) != 5 {
		t.Fatalf("got %d articles, want 5", len(day.Articles))
	}

	stats := sched.Stats
	if stats.TotalArticles != 5 || stats.ImportedArticles != 3 || stats.NewArticles != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.WorkingDaysUsed != 1 || stats.DistributionEfficiency != 100 || stats.AvgPerDay != 5 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAssembler_Schedule_ConservesArticles(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		a := newTestAssembler(seed)

		result, err := a.Schedule(Request{
			Imported:  articles("imp", 200),
			New:       articles("new", 300),
			StartDate: testStart,
			MinPerDay: 50,
			MaxPerDay: 80,
		})
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		sched := result.Schedule
		seen := make(map[string]domain.Classification)
		for _, day := range sched.Days {
			if day.Allocation.Count != len(day.Articles) {
				t.Errorf("seed %d: %s allocation %d but %d articles", seed, domain.DayKey(day.Date), day.Allocation.Count, len(day.Articles))
			}

			timestamps := make(map[time.Time]bool)
			for i, art := range day.Articles {
				if _, dup := seen[art.ArticleID]; dup {
					t.Errorf("seed %d: article %s scheduled twice", seed, art.ArticleID)
				}
				seen[art.ArticleID] = art.Slot.Classification

				if timestamps[art.ScheduledAt] {
					t.Errorf("seed %d: duplicate timestamp %v", seed, art.ScheduledAt)
				}
				timestamps[art.ScheduledAt] = true

				if i > 0 && art.ScheduledAt.Before(day.Articles[i-1].ScheduledAt) {
					t.Errorf("seed %d: articles out of order on %s", seed, domain.DayKey(day.Date))
				}
			}
		}

		if len(seen) != 500 {
			t.Fatalf("seed %d: scheduled %d articles, want 500", seed, len(seen))
		}
		for id, c := range seen {
			wantImported := len(id) > 3 && id[:3] == "imp"
			if c.IsImported() != wantImported {
				t.Errorf("seed %d: article %s classified %s", seed, id, c)
			}
		}
		if sched.Stats.TotalArticles != 500 || sched.Stats.ImportedArticles != 200 || sched.Stats.NewArticles != 300 {
			t.Errorf("seed %d: stats = %+v", seed, sched.Stats)
		}
		if !result.Window.End().Equal(sched.EndDate) {
			t.Errorf("seed %d: EndDate %v does not match window %v", seed, sched.EndDate, result.Window.End())
		}
	}
}

func TestAssembler_Schedule_TimestampPolicy(t *testing.T) {
	a := newTestAssembler(3)

	created := time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)
	published := time.Date(2020, 3, 2, 10, 0, 0, 0, time.UTC)

	result, err := a.Schedule(Request{
		Imported: []domain.Article{
			{ID: "imp-with-dates", OriginalCreatedAt: &created, OriginalPublishedAt: &published},
			{ID: "imp-without-dates"},
		},
		New:       articles("new", 1),
		StartDate: testStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, art := range result.Schedule.Days[0].Articles {
		switch art.ArticleID {
		case "imp-with-dates":
			if !art.CreatedAt.Equal(created) || !art.PublishedAt.Equal(published) {
				t.Errorf("imported dates not preserved: created %v published %v", art.CreatedAt, art.PublishedAt)
			}
			if art.Slot.OriginalCreatedAt == nil {
				t.Error("slot lost original created time")
			}
		case "imp-without-dates":
			if !art.CreatedAt.Equal(art.ScheduledAt) || !art.PublishedAt.Equal(art.ScheduledAt) {
				t.Errorf("imported article without dates should use slot time")
			}
			if art.UpdatedAt.After(testNow) {
				t.Errorf("imported UpdatedAt %v after now", art.UpdatedAt)
			}
		default:
			if !art.CreatedAt.Equal(art.ScheduledAt) || !art.PublishedAt.Equal(art.ScheduledAt) {
				t.Errorf("new article dates differ from slot")
			}
			if !art.UpdatedAt.After(art.ScheduledAt) {
				t.Errorf("new UpdatedAt %v not after scheduled %v", art.UpdatedAt, art.ScheduledAt)
			}
		}
	}
}

func TestAssembler_Schedule_CountOnly(t *testing.T) {
	a := newTestAssembler(1)

	result, err := a.Schedule(Request{TotalItems: 120, StartDate: testStart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Schedule.ArticleCount(); got != 120 {
		t.Errorf("ArticleCount() = %d, want 120", got)
	}
	if got := result.Schedule.Stats.NewArticles; got != 120 {
		t.Errorf("NewArticles = %d, want 120", got)
	}
}

func TestAssembler_Schedule_SoftMaxFromRequestedMax(t *testing.T) {
	tests := []struct {
		name          string
		maxPerDay     int
		wantRequested int
		wantExceeds   bool
	}{
		{name: "above soft ceiling", maxPerDay: 110, wantRequested: 110, wantExceeds: true},
		{name: "at soft ceiling", maxPerDay: 100, wantRequested: 100, wantExceeds: false},
		{name: "default max", maxPerDay: 0, wantRequested: 80, wantExceeds: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestAssembler(1).Schedule(Request{
				TotalItems: 300,
				StartDate:  testStart,
				MaxPerDay:  tt.maxPerDay,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.ExceedsSoftMax != tt.wantExceeds {
				t.Errorf("ExceedsSoftMax = %v, want %v", result.ExceedsSoftMax, tt.wantExceeds)
			}
			if result.RequestedMaxPerDay != tt.wantRequested {
				t.Errorf("RequestedMaxPerDay = %d, want %d", result.RequestedMaxPerDay, tt.wantRequested)
			}
			if got := result.Window.MaxPerDay(); got > 80 {
				t.Errorf("Window.MaxPerDay() = %d, want capped at 80", got)
			}
		})
	}
}

func TestAssembler_Schedule_OversizedCountRejectedBeforePlaceholders(t *testing.T) {
	ids := 0
	a := NewAssembler(
		WithClock(calendar.FixedClock(testNow)),
		WithSeed(1),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)

	_, err := a.Schedule(Request{TotalItems: 2_000_000, StartDate: testStart})
	if !errors.Is(err, domain.ErrInvalidWindow) {
		t.Fatalf("error = %v, want ErrInvalidWindow", err)
	}
	if ids != 0 {
		t.Errorf("generated %d ids before rejecting, want 0", ids)
	}
}

func TestAssembler_Schedule_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "start in the past",
			req:     Request{TotalItems: 10, StartDate: testNow.AddDate(0, 0, -1)},
			wantErr: domain.ErrInvalidWindow,
		},
		{
			name:    "max above absolute ceiling",
			req:     Request{TotalItems: 10, StartDate: testStart, MinPerDay: 50, MaxPerDay: 150},
			wantErr: domain.ErrInvalidLimits,
		},
		{
			name:    "negative min",
			req:     Request{TotalItems: 10, StartDate: testStart, MinPerDay: -5},
			wantErr: domain.ErrInvalidLimits,
		},
		{
			name:    "total does not match list",
			req:     Request{TotalItems: 10, New: articles("new", 3), StartDate: testStart},
			wantErr: domain.ErrArticleCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestAssembler(1).Schedule(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if !domain.IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestAssembler_Schedule_SameSeedSameSchedule(t *testing.T) {
	req := Request{TotalItems: 300, StartDate: testStart}

	first, err := newTestAssembler(42).Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTestAssembler(42).Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, b := first.Schedule.Allocations(), second.Schedule.Allocations()
	if len(a) != len(b) {
		t.Fatalf("allocation lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Count != b[i].Count {
			t.Errorf("allocation[%d] %d vs %d", i, a[i].Count, b[i].Count)
		}
	}
}

func TestSchedule_DayLookup(t *testing.T) {
	result, err := newTestAssembler(1).Schedule(Request{TotalItems: 200, StartDate: testStart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day, ok := result.Schedule.Day(testStart.Add(15 * time.Hour))
	if !ok {
		t.Fatal("Day() found nothing for the start date")
	}
	if !day.Date.Equal(testStart) {
		t.Errorf("Day() = %v, want %v", day.Date, testStart)
	}
	if _, ok := result.Schedule.Day(testStart.AddDate(0, 0, -1)); ok {
		t.Error("Day() found a day before the start")
	}
}
