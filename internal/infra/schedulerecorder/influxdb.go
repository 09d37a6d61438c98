//go:build !gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

const (
	allocationMeasurement = "daily_allocation"
	summaryMeasurement    = "schedule_summary"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

// RecordAllocations writes one point per publishing day. The point time is
// the day itself so repeated runs for the same schedule overwrite.
func (r *influxDBRecorder) RecordAllocations(ctx context.Context, records []domain.AllocationRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, influxdb2.NewPoint(
			allocationMeasurement,
			map[string]string{
				"run_id":      runIDOrDefault(record.RunID),
				"schedule_id": record.ScheduleID,
				"weekday":     record.Day.Weekday().String(),
				"extra_day":   strconv.FormatBool(record.IsExtraDay),
			},
			map[string]any{
				"count":            record.Count,
				"imported_count":   record.ImportedCount,
				"new_count":        record.NewCount,
				"peak_hour_count":  record.PeakHourCount,
				"is_peak_capacity": record.IsPeakCapacity,
			},
			record.Day,
		))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write allocations to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordSummary(ctx context.Context, record domain.ScheduleSummaryRecord) error {
	point := influxdb2.NewPoint(
		summaryMeasurement,
		map[string]string{
			"run_id":      runIDOrDefault(record.RunID),
			"schedule_id": record.ScheduleID,
		},
		map[string]any{
			"total_articles":          record.TotalArticles,
			"working_days_used":       record.WorkingDaysUsed,
			"distribution_efficiency": record.DistributionEfficiency,
			"attempts":                record.Attempts,
			"start_unix":              record.StartDate.Unix(),
			"end_unix":                record.EndDate.Unix(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write schedule summary to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("schedule_id", record.ScheduleID),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func runIDOrDefault(runID string) string {
	if runID == "" {
		return "default"
	}
	return runID
}
