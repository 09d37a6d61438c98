//go:build !gcloud

package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// gcpTraceAttrs falls back to plain OTel ids outside GCP.
func gcpTraceAttrs(ctx context.Context, _ string) []slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	}
}
