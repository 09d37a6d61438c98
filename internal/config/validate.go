package config

import "errors"

// ValidateForRun checks every concern the server needs and reports all
// problems at once.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Publishing.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Schedule.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !cfg.Schedule.CacheDisabled {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
