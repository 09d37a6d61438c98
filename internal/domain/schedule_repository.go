package domain

import "context"

//go:generate mockgen -source=schedule_repository.go -destination=schedule_repository_mock.go -package=domain

type ScheduleRepository interface {
	SaveSchedule(ctx context.Context, schedule *Schedule) error
	GetSchedule(ctx context.Context, id string) (*Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}
