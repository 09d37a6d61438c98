package config

import "errors"

var (
	ErrRedisAddrMissing   = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB     = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidTimezone    = errors.New("PUBLISH_TIMEZONE must be a valid IANA location")
	ErrInvalidPublishing  = errors.New("invalid publishing limits")
	ErrInvalidRegenerator = errors.New("invalid schedule regeneration settings")
)
