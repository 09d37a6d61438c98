package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "publication.schedule"
)

type ScheduleMetrics struct {
	schedulesGenerated     metric.Int64Counter
	articlesScheduled      metric.Int64Counter
	extraDays              metric.Int64Counter
	regenerations          metric.Int64Counter
	distributionEfficiency metric.Float64Histogram
	assemblyDuration       metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	schedulesGenerated, err := meter.Int64Counter(
		"schedule_generated_total",
		metric.WithDescription("Total number of schedules generated"),
		metric.WithUnit("{schedule}"),
	)
	if err != nil {
		return nil, err
	}

	articlesScheduled, err := meter.Int64Counter(
		"schedule_articles_total",
		metric.WithDescription("Articles assigned a publication slot"),
		metric.WithUnit("{article}"),
	)
	if err != nil {
		return nil, err
	}

	extraDays, err := meter.Int64Counter(
		"schedule_extra_days_total",
		metric.WithDescription("Business days appended beyond the sized window"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return nil, err
	}

	regenerations, err := meter.Int64Counter(
		"schedule_regenerations_total",
		metric.WithDescription("Schedules discarded for low distribution efficiency"),
		metric.WithUnit("{schedule}"),
	)
	if err != nil {
		return nil, err
	}

	distributionEfficiency, err := meter.Float64Histogram(
		"schedule_distribution_efficiency",
		metric.WithDescription("Lightest day divided by heaviest day, in percent"),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(
			10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
		),
	)
	if err != nil {
		return nil, err
	}

	assemblyDuration, err := meter.Float64Histogram(
		"schedule_assembly_duration_seconds",
		metric.WithDescription("Time spent assembling a schedule"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		schedulesGenerated:     schedulesGenerated,
		articlesScheduled:      articlesScheduled,
		extraDays:              extraDays,
		regenerations:          regenerations,
		distributionEfficiency: distributionEfficiency,
		assemblyDuration:       assemblyDuration,
	}, nil
}

func (m *ScheduleMetrics) RecordScheduleGenerated(ctx context.Context, outcome string) {
	m.schedulesGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordArticlesScheduled(ctx context.Context, classification string, count int) {
	if count <= 0 {
		return
	}
	m.articlesScheduled.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("classification", classification),
	))
}

func (m *ScheduleMetrics) RecordExtraDays(ctx context.Context, days int) {
	if days <= 0 {
		return
	}
	m.extraDays.Add(ctx, int64(days))
}

func (m *ScheduleMetrics) RecordRegeneration(ctx context.Context) {
	m.regenerations.Add(ctx, 1)
}

func (m *ScheduleMetrics) RecordDistributionEfficiency(ctx context.Context, efficiency float64) {
	m.distributionEfficiency.Record(ctx, efficiency)
}

func (m *ScheduleMetrics) RecordAssemblyDuration(ctx context.Context, duration time.Duration) {
	m.assemblyDuration.Record(ctx, duration.Seconds())
}
