package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/config"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/handler"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/health"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/publication"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/schedule"
)

const serviceModule = logging.Module("publication-scheduling")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the schedule preview API",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return err
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		return fmt.Errorf("initialize HTTP metrics: %w", err)
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		return fmt.Errorf("initialize schedule metrics: %w", err)
	}

	// InfluxDB locally, BigQuery under gcloud
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, schedulerecorder.LoadConfig())
	if err != nil {
		return fmt.Errorf("initialize schedule result recorder: %w", err)
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	checks := map[string]health.CheckFunc{}
	var scheduleRepo domain.ScheduleRepository

	if cfg.Schedule.CacheDisabled {
		slog.Info("schedule cache disabled")
	} else {
		redisClient, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		scheduleRepo = repository.NewScheduleRepository(redisClient, cfg.Redis.KeyPrefix, cfg.Schedule.CacheTTL)
		checks["redis"] = health.RedisCheck(redisClient)
	}

	assembler := schedule.NewAssembler(schedule.WithPolicy(cfg.Publishing.Policy()))
	publicationService := publication.NewService(
		assembler,
		scheduleRepo,
		resultRecorder,
		scheduleMetrics,
		publication.Config{
			MinEfficiency: cfg.Schedule.MinEfficiency,
			MaxAttempts:   cfg.Schedule.MaxAttempts,
		},
	)
	scheduleHandler := handler.NewScheduleHandler(publicationService, handler.Defaults{
		MinPerDay: cfg.Publishing.MinPerDay,
		MaxPerDay: cfg.Publishing.MaxPerDay,
		Location:  cfg.Publishing.Location,
	})

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-publication-scheduling/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version, checks)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/schedules/preview", scheduleHandler.HandlePreview)
		v1.GET("/schedules/:id", scheduleHandler.HandleGet)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("min_per_day", cfg.Publishing.MinPerDay),
			slog.Int("max_per_day", cfg.Publishing.MaxPerDay),
			slog.Int("soft_max_per_day", cfg.Publishing.SoftMaxPerDay),
			slog.String("timezone", cfg.Publishing.Location.String()),
			slog.Bool("cache_enabled", scheduleRepo != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}

		slog.Info("server exited properly")
		return nil

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited: %w", err)
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (_ *redis.Client, err error) {
	redisClient := redis.NewClient(cfg.Options())
	defer func() {
		if err != nil {
			_ = redisClient.Close()
		}
	}()

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))

	return redisClient, nil
}
