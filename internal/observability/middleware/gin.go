package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/metrics"
)

type GinConfig struct {
	// SkipPaths are served without spans or access logs.
	SkipPaths   []string
	Module      logging.Module
	TracerName  string
	HTTPMetrics *metrics.HTTPMetrics
}

// Gin starts a server span per request, tags the request context with the
// module and writes one access log line when the handler returns.
func Gin(cfg GinConfig) gin.HandlerFunc {
	tracer := otel.Tracer(cfg.TracerName)
	propagator := otel.GetTextMapPropagator()

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		if cfg.Module != "" {
			ctx = logging.WithModule(ctx, cfg.Module)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		if cfg.HTTPMetrics != nil {
			cfg.HTTPMetrics.RecordRequest(ctx, c.Request.Method, route, status, latency)
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		slog.Log(ctx, level, "request completed",
			slog.String("event", "http.request"),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// PanicRecoveryGin turns a handler panic into a 500 and logs the stack.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()
				err := fmt.Errorf("panic: %v", r)

				span := trace.SpanFromContext(ctx)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())

				slog.ErrorContext(ctx, "panic recovered",
					slog.String("event", "http.panic"),
					slog.String("error", err.Error()),
					slog.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
