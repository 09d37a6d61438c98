package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

const (
	DefaultKeyPrefix = "schedule:"
	DefaultTTL       = 24 * time.Hour
)

type scheduleRepository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewScheduleRepository stores schedules as JSON documents that expire after
// ttl. Empty prefix and non-positive ttl fall back to the defaults.
func NewScheduleRepository(client *redis.Client, keyPrefix string, ttl time.Duration) domain.ScheduleRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &scheduleRepository{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (r *scheduleRepository) key(id string) string {
	return r.keyPrefix + id
}

func (r *scheduleRepository) SaveSchedule(ctx context.Context, schedule *domain.Schedule) error {
	if schedule == nil {
		return ErrInvalidScheduleData
	}
	if schedule.ID == "" {
		return ErrMissingScheduleID
	}

	data, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScheduleData, err)
	}

	return r.client.Set(ctx, r.key(schedule.ID), data, r.ttl).Err()
}

func (r *scheduleRepository) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	if id == "" {
		return nil, ErrMissingScheduleID
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrScheduleNotFound, id)
		}
		return nil, err
	}

	var schedule domain.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleData, err)
	}

	return &schedule, nil
}

func (r *scheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingScheduleID
	}
	return r.client.Del(ctx, r.key(id)).Err()
}
