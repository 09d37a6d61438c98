package repository

import "errors"

var (
	ErrInvalidScheduleData = errors.New("invalid schedule data")
	ErrMissingScheduleID   = errors.New("schedule id is required")
)
