package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	scheduleMinEfficiencyEnv = "SCHEDULE_MIN_EFFICIENCY"
	scheduleMaxAttemptsEnv   = "SCHEDULE_MAX_ATTEMPTS"
	scheduleCacheDisabledEnv = "SCHEDULE_CACHE_DISABLED"
	scheduleCacheTTLHoursEnv = "SCHEDULE_CACHE_TTL_HOURS"

	defaultScheduleMaxAttempts   = 3
	defaultScheduleCacheTTLHours = 24
)

type ScheduleConfig struct {
	// MinEfficiency is the distribution efficiency (0-100) below which a
	// schedule is regenerated. Zero disables regeneration.
	MinEfficiency float64
	MaxAttempts   int
	CacheDisabled bool
	CacheTTL      time.Duration
}

func LoadScheduleConfig() *ScheduleConfig {
	minEfficiency := 0.0
	if v := os.Getenv(scheduleMinEfficiencyEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			minEfficiency = parsed
		}
	}

	return &ScheduleConfig{
		MinEfficiency: minEfficiency,
		MaxAttempts:   positiveIntEnv(scheduleMaxAttemptsEnv, defaultScheduleMaxAttempts),
		CacheDisabled: os.Getenv(scheduleCacheDisabledEnv) == "true",
		CacheTTL:      time.Duration(positiveIntEnv(scheduleCacheTTLHoursEnv, defaultScheduleCacheTTLHours)) * time.Hour,
	}
}

func (c *ScheduleConfig) Validate() error {
	if c.MinEfficiency > 100 {
		return fmt.Errorf("%w: min efficiency %.2f exceeds 100", ErrInvalidRegenerator, c.MinEfficiency)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts %d must be positive", ErrInvalidRegenerator, c.MaxAttempts)
	}
	return nil
}
