package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

const checkTimeout = 5 * time.Second

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckFunc probes one dependency. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// RedisCheck pings the schedule cache.
func RedisCheck(client *redis.Client) CheckFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// Checker performs health checks on service dependencies.
type Checker struct {
	version string
	checks  map[string]CheckFunc
}

// NewChecker creates a health checker. Dependencies that are disabled are
// simply left out of checks.
func NewChecker(version string, checks map[string]CheckFunc) *Checker {
	return &Checker{
		version: version,
		checks:  checks,
	}
}

// Check runs every registered check and returns the overall status.
func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult, len(c.checks)),
	}

	for name, check := range c.checks {
		start := time.Now()
		if err := check(checkCtx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
			continue
		}
		status.Checks[name] = CheckResult{
			Status:    StatusHealthy,
			LatencyMs: time.Since(start).Milliseconds(),
		}
	}

	return status
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
