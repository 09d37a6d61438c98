package schedulerecorder

import (
	"context"
	"testing"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SCHEDULE_RESULTS_DISABLED", "INFLUXDB_URL", "INFLUXDB_BUCKET", "BIGQUERY_DATASET", "BIGQUERY_TABLE", "BIGQUERY_SUMMARY_TABLE"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Disabled {
		t.Error("Disabled = true, want false")
	}
	if cfg.InfluxDBURL != "http://localhost:8086" || cfg.InfluxDBBucket != "schedule_results" {
		t.Errorf("influx config = %+v", cfg)
	}
	if cfg.BigQueryDataset != "schedule_results" || cfg.BigQueryTable != "daily_allocations" || cfg.BigQuerySummaryTable != "schedule_summaries" {
		t.Errorf("bigquery config = %+v", cfg)
	}
}

func TestNewRecorderDisabledReturnsNoop(t *testing.T) {
	ctx := context.Background()

	recorder, err := NewRecorder(ctx, &Config{Disabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := recorder.(*noopRecorder); !ok {
		t.Fatalf("NewRecorder() = %T, want *noopRecorder", recorder)
	}

	if err := recorder.RecordAllocations(ctx, []domain.AllocationRecord{{ScheduleID: "s", Count: 3}}); err != nil {
		t.Errorf("RecordAllocations() = %v", err)
	}
	if err := recorder.RecordSummary(ctx, domain.ScheduleSummaryRecord{ScheduleID: "s"}); err != nil {
		t.Errorf("RecordSummary() = %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
