//go:build !gcloud

package observability

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newExporters ships to an OTLP/HTTP collector when
// OTEL_EXPORTER_OTLP_ENDPOINT is set. Without it spans and metrics stay
// in process.
func newExporters(ctx context.Context, _ Config) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return nil, nil, nil
	}

	spanExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}

	return spanExporter, metricExporter, nil
}
