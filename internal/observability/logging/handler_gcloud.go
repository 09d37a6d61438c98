//go:build gcloud

package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// gcpTraceAttrs emits the fields Cloud Logging uses to join logs to traces.
func gcpTraceAttrs(ctx context.Context, projectID string) []slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() || projectID == "" {
		return nil
	}
	return []slog.Attr{
		slog.String("logging.googleapis.com/trace", "projects/"+projectID+"/traces/"+sc.TraceID().String()),
		slog.String("logging.googleapis.com/spanId", sc.SpanID().String()),
		slog.Bool("logging.googleapis.com/trace_sampled", sc.IsSampled()),
	}
}
