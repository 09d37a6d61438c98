package schedulerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ScheduleResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordAllocations(_ context.Context, _ []domain.AllocationRecord) error {
	return nil
}

func (n *noopRecorder) RecordSummary(_ context.Context, _ domain.ScheduleSummaryRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
