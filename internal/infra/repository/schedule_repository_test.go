package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/testutil"
)

func sampleSchedule(id string) *domain.Schedule {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	published := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	slotTime := day.Add(9*time.Hour + 15*time.Minute + 7*time.Second)

	return &domain.Schedule{
		ID:          id,
		GeneratedAt: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
		StartDate:   day,
		EndDate:     day.Add(24*time.Hour - time.Second),
		Days: []domain.DaySchedule{
			{
				Date:       day,
				Allocation: domain.NewDailyAllocation(day, 1, 100, false),
				Articles: []domain.ScheduledArticle{
					{
						ArticleID: "article-1",
						Slot: domain.ScheduleSlot{
							Timestamp:           slotTime,
							Classification:      domain.ClassificationImported,
							IsPeakHour:          true,
							Weekday:             time.Monday,
							OriginalPublishedAt: &published,
						},
						ScheduledAt: slotTime,
						CreatedAt:   slotTime,
						PublishedAt: published,
						UpdatedAt:   slotTime.Add(-time.Hour),
					},
				},
			},
		},
		Stats: domain.ScheduleStats{TotalArticles: 1, ImportedArticles: 1, WorkingDaysUsed: 1, AvgPerDay: 1, MinPerDay: 1, MaxPerDay: 1, DistributionEfficiency: 100},
	}
}

func TestSaveAndGetSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewScheduleRepository(client, "", time.Hour)
	want := sampleSchedule("sched-1")

	if err := repo.SaveSchedule(ctx, want); err != nil {
		t.Fatalf("SaveSchedule() error: %v", err)
	}

	got, err := repo.GetSchedule(ctx, "sched-1")
	if err != nil {
		t.Fatalf("GetSchedule() error: %v", err)
	}

	if got.ID != want.ID || got.Stats != want.Stats {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.Days) != 1 || len(got.Days[0].Articles) != 1 {
		t.Fatalf("days not restored: %+v", got.Days)
	}

	article := got.Days[0].Articles[0]
	if !article.ScheduledAt.Equal(want.Days[0].Articles[0].ScheduledAt) {
		t.Errorf("ScheduledAt = %v", article.ScheduledAt)
	}
	if article.Slot.OriginalPublishedAt == nil || !article.Slot.OriginalPublishedAt.Equal(*want.Days[0].Articles[0].Slot.OriginalPublishedAt) {
		t.Errorf("OriginalPublishedAt = %v", article.Slot.OriginalPublishedAt)
	}
	if got.Days[0].Allocation.Count != want.Days[0].Allocation.Count {
		t.Errorf("allocation not restored: %+v", got.Days[0].Allocation)
	}

	ttl, err := client.TTL(ctx, DefaultKeyPrefix+"sched-1").Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected TTL around 1 hour, got %v", ttl)
	}
}

func TestGetScheduleNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewScheduleRepository(client, "test:", 0)

	_, err := repo.GetSchedule(ctx, "missing")
	if !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Errorf("GetSchedule() error = %v, want ErrScheduleNotFound", err)
	}
}

func TestGetScheduleCorruptData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	if err := client.Set(ctx, "schedule:broken", "{not json", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	repo := NewScheduleRepository(client, "", 0)

	_, err := repo.GetSchedule(ctx, "broken")
	if !errors.Is(err, ErrInvalidScheduleData) {
		t.Errorf("GetSchedule() error = %v, want ErrInvalidScheduleData", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewScheduleRepository(client, "", 0)

	if err := repo.SaveSchedule(ctx, sampleSchedule("to-delete")); err != nil {
		t.Fatalf("SaveSchedule() error: %v", err)
	}
	if err := repo.DeleteSchedule(ctx, "to-delete"); err != nil {
		t.Fatalf("DeleteSchedule() error: %v", err)
	}

	_, err := repo.GetSchedule(ctx, "to-delete")
	if !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Errorf("GetSchedule() after delete error = %v, want ErrScheduleNotFound", err)
	}
}

func TestScheduleRepositoryRejectsInvalidInput(t *testing.T) {
	repo := NewScheduleRepository(nil, "", 0)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{name: "nil schedule", call: func() error { return repo.SaveSchedule(ctx, nil) }, wantErr: ErrInvalidScheduleData},
		{name: "schedule without id", call: func() error { return repo.SaveSchedule(ctx, &domain.Schedule{}) }, wantErr: ErrMissingScheduleID},
		{name: "get without id", call: func() error { _, err := repo.GetSchedule(ctx, ""); return err }, wantErr: ErrMissingScheduleID},
		{name: "delete without id", call: func() error { return repo.DeleteSchedule(ctx, "") }, wantErr: ErrMissingScheduleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
