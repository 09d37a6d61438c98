//go:build gcloud

package observability

import (
	"context"
	"errors"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errMissingProjectID = errors.New("GCP project id is required for Cloud Trace and Cloud Monitoring export")

func newExporters(_ context.Context, cfg Config) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	if cfg.GCPProjectID == "" {
		return nil, nil, errMissingProjectID
	}

	spanExporter, err := texporter.New(texporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return nil, nil, err
	}

	metricExporter, err := mexporter.New(mexporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return nil, nil, err
	}

	return spanExporter, metricExporter, nil
}
