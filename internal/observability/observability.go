package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/logging"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	GCPProjectID  string
	SamplingRate  float64
	DefaultModule logging.Module
	LogLevel      slog.Leveler
}

// Resources owns the global providers installed by Init.
type Resources struct {
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Init installs the global tracer and meter providers and builds the JSON
// logger. Exporters are chosen per build; see exporters_local.go and
// exporters_gcloud.go.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceInfo.Name),
			attribute.String("service.version", cfg.ServiceInfo.Version),
			attribute.String("deployment.environment", string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, err
	}

	spanExporter, metricExporter, err := newExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(cfg.SamplingRate))),
	}
	if spanExporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(spanExporter))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	mpOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if metricExporter != nil {
		mpOpts = append(mpOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
	}
	mp := sdkmetric.NewMeterProvider(mpOpts...)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger := logging.New(os.Stdout, logging.Config{
		Service:       cfg.ServiceInfo,
		Environment:   cfg.Environment,
		DefaultModule: cfg.DefaultModule,
		Level:         cfg.LogLevel,
		GCPProjectID:  cfg.GCPProjectID,
	})

	return &Resources{
		logger:         logger,
		tracerProvider: tp,
		meterProvider:  mp,
	}, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

// Shutdown flushes pending spans and metrics.
func (r *Resources) Shutdown(ctx context.Context) error {
	return errors.Join(
		r.tracerProvider.Shutdown(ctx),
		r.meterProvider.Shutdown(ctx),
	)
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}
