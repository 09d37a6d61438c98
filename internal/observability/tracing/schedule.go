package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-publication-scheduling/internal/service/publication"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartPlanSpan(ctx context.Context, totalItems, importedItems int, startDate time.Time) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.plan",
		trace.WithAttributes(
			attribute.Int("schedule.total_items", totalItems),
			attribute.Int("schedule.imported_items", importedItems),
			attribute.String("schedule.start_date", startDate.Format(time.DateOnly)),
		),
	)
}

func StartAssemblySpan(ctx context.Context, attempt int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.assemble",
		trace.WithAttributes(
			attribute.Int("schedule.attempt", attempt),
		),
	)
}

func StartCacheSpan(ctx context.Context, operation, scheduleID string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.cache."+operation,
		trace.WithAttributes(
			attribute.String("schedule.id", scheduleID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordAssemblyResult(span trace.Span, workingDays, extraDays int, efficiency float64, extended bool, err error) {
	span.SetAttributes(
		attribute.Int("schedule.working_days", workingDays),
		attribute.Int("schedule.extra_days", extraDays),
		attribute.Float64("schedule.distribution_efficiency", efficiency),
		attribute.Bool("schedule.extended", extended),
	)
	RecordResult(span, err)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
