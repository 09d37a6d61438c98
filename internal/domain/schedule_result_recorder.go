package domain

import (
	"context"
	"time"
)

type AllocationRecord struct {
	RunID          string
	ScheduleID     string
	Day            time.Time
	Count          int
	ImportedCount  int
	NewCount       int
	PeakHourCount  int
	IsPeakCapacity bool
	IsExtraDay     bool
}

type ScheduleSummaryRecord struct {
	RunID                  string
	ScheduleID             string
	StartDate              time.Time
	EndDate                time.Time
	TotalArticles          int
	WorkingDaysUsed        int
	DistributionEfficiency float64
	Attempts               int
}

//go:generate mockgen -source=schedule_result_recorder.go -destination=schedule_result_recorder_mock.go -package=domain

type ScheduleResultRecorder interface {
	RecordAllocations(ctx context.Context, records []AllocationRecord) error
	RecordSummary(ctx context.Context, record ScheduleSummaryRecord) error
	Close() error
}
