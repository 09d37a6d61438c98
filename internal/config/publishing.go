package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/window"
)

const (
	publishMinPerDayEnv            = "PUBLISH_MIN_PER_DAY"
	publishMaxPerDayEnv            = "PUBLISH_MAX_PER_DAY"
	publishSoftMaxPerDayEnv        = "PUBLISH_SOFT_MAX_PER_DAY"
	publishAbsoluteMaxPerDayEnv    = "PUBLISH_ABSOLUTE_MAX_PER_DAY"
	publishRecommendedMaxPerDayEnv = "PUBLISH_RECOMMENDED_MAX_PER_DAY"
	publishTimezoneEnv             = "PUBLISH_TIMEZONE"

	defaultPublishTimezone = "UTC"
)

// PublishingConfig holds the default per-day bounds and the ceilings every
// window is checked against.
type PublishingConfig struct {
	MinPerDay            int
	MaxPerDay            int
	SoftMaxPerDay        int
	AbsoluteMaxPerDay    int
	RecommendedMaxPerDay int
	Location             *time.Location
}

func LoadPublishingConfig() (*PublishingConfig, error) {
	tz := os.Getenv(publishTimezoneEnv)
	if tz == "" {
		tz = defaultPublishTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}

	return &PublishingConfig{
		MinPerDay:            positiveIntEnv(publishMinPerDayEnv, window.DefaultMinPerDay),
		MaxPerDay:            positiveIntEnv(publishMaxPerDayEnv, window.DefaultMaxPerDay),
		SoftMaxPerDay:        positiveIntEnv(publishSoftMaxPerDayEnv, window.DefaultSoftMaxPerDay),
		AbsoluteMaxPerDay:    positiveIntEnv(publishAbsoluteMaxPerDayEnv, window.DefaultAbsoluteMaxPerDay),
		RecommendedMaxPerDay: positiveIntEnv(publishRecommendedMaxPerDayEnv, window.DefaultRecommendedMaxPerDay),
		Location:             loc,
	}, nil
}

func (c *PublishingConfig) Validate() error {
	switch {
	case c.MinPerDay > c.MaxPerDay:
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidPublishing, c.MinPerDay, c.MaxPerDay)
	case c.MaxPerDay > c.AbsoluteMaxPerDay:
		return fmt.Errorf("%w: max %d exceeds absolute max %d", ErrInvalidPublishing, c.MaxPerDay, c.AbsoluteMaxPerDay)
	case c.SoftMaxPerDay > c.AbsoluteMaxPerDay:
		return fmt.Errorf("%w: soft max %d exceeds absolute max %d", ErrInvalidPublishing, c.SoftMaxPerDay, c.AbsoluteMaxPerDay)
	case c.RecommendedMaxPerDay > c.SoftMaxPerDay:
		return fmt.Errorf("%w: recommended max %d exceeds soft max %d", ErrInvalidPublishing, c.RecommendedMaxPerDay, c.SoftMaxPerDay)
	case c.MinPerDay > c.RecommendedMaxPerDay:
		return fmt.Errorf("%w: min %d exceeds recommended max %d", ErrInvalidPublishing, c.MinPerDay, c.RecommendedMaxPerDay)
	}
	return nil
}

func (c *PublishingConfig) Policy() window.Policy {
	return window.Policy{
		SoftMaxPerDay:        c.SoftMaxPerDay,
		AbsoluteMaxPerDay:    c.AbsoluteMaxPerDay,
		RecommendedMaxPerDay: c.RecommendedMaxPerDay,
		MaxSpanDays:          window.DefaultMaxSpanDays,
	}
}

func positiveIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
