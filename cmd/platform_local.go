//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/logging"
)

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "publication-scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      level,
	})
}
