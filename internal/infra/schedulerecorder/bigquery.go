//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

type bigQueryAllocation struct {
	RecordedAt     time.Time         `bigquery:"recorded_at"`
	RunID          string            `bigquery:"run_id"`
	ScheduleID     string            `bigquery:"schedule_id"`
	Day            bigquery.NullDate `bigquery:"day"`
	Weekday        string            `bigquery:"weekday"`
	Count          int64             `bigquery:"count"`
	ImportedCount  int64             `bigquery:"imported_count"`
	NewCount       int64             `bigquery:"new_count"`
	PeakHourCount  int64             `bigquery:"peak_hour_count"`
	IsPeakCapacity bool              `bigquery:"is_peak_capacity"`
	IsExtraDay     bool              `bigquery:"is_extra_day"`
}

type bigQuerySummary struct {
	RecordedAt             time.Time `bigquery:"recorded_at"`
	RunID                  string    `bigquery:"run_id"`
	ScheduleID             string    `bigquery:"schedule_id"`
	StartDate              time.Time `bigquery:"start_date"`
	EndDate                time.Time `bigquery:"end_date"`
	TotalArticles          int64     `bigquery:"total_articles"`
	WorkingDaysUsed        int64     `bigquery:"working_days_used"`
	DistributionEfficiency float64   `bigquery:"distribution_efficiency"`
	Attempts               int64     `bigquery:"attempts"`
}

type bigQueryRecorder struct {
	client          *bigquery.Client
	allocations     *bigquery.Inserter
	summaries       *bigquery.Inserter
	dataset         string
	allocationTable string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:          client,
		allocations:     dataset.Table(cfg.BigQueryTable).Inserter(),
		summaries:       dataset.Table(cfg.BigQuerySummaryTable).Inserter(),
		dataset:         cfg.BigQueryDataset,
		allocationTable: cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordAllocations(ctx context.Context, records []domain.AllocationRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryAllocation, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryAllocation{
			RecordedAt:     now,
			RunID:          record.RunID,
			ScheduleID:     record.ScheduleID,
			Day:            bigquery.NullDate{Date: civil.DateOf(record.Day), Valid: true},
			Weekday:        record.Day.Weekday().String(),
			Count:          int64(record.Count),
			ImportedCount:  int64(record.ImportedCount),
			NewCount:       int64(record.NewCount),
			PeakHourCount:  int64(record.PeakHourCount),
			IsPeakCapacity: record.IsPeakCapacity,
			IsExtraDay:     record.IsExtraDay,
		})
	}

	if err := r.allocations.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert allocations to BigQuery",
			slog.String("error", err.Error()),
			slog.String("table", r.dataset+"."+r.allocationTable),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordSummary(ctx context.Context, record domain.ScheduleSummaryRecord) error {
	row := &bigQuerySummary{
		RecordedAt:             time.Now(),
		RunID:                  record.RunID,
		ScheduleID:             record.ScheduleID,
		StartDate:              record.StartDate,
		EndDate:                record.EndDate,
		TotalArticles:          int64(record.TotalArticles),
		WorkingDaysUsed:        int64(record.WorkingDaysUsed),
		DistributionEfficiency: record.DistributionEfficiency,
		Attempts:               int64(record.Attempts),
	}

	if err := r.summaries.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert schedule summary to BigQuery",
			slog.String("error", err.Error()),
			slog.String("schedule_id", record.ScheduleID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
