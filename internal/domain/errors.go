package domain

import "errors"

var (
	ErrInvalidWindow        = errors.New("invalid publishing window")
	ErrInvalidLimits        = errors.New("invalid per-day limits")
	ErrInvalidSlotTime      = errors.New("invalid slot time")
	ErrInvalidArticleType   = errors.New("invalid article type")
	ErrDayCapacityExceeded  = errors.New("day has no free slot times left")
	ErrArticleCountMismatch = errors.New("article count mismatch")
	ErrScheduleNotFound     = errors.New("schedule not found")
)

// IsValidationError reports whether err comes from caller input rather than
// from infrastructure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidLimits) ||
		errors.Is(err, ErrInvalidSlotTime) ||
		errors.Is(err, ErrInvalidArticleType) ||
		errors.Is(err, ErrDayCapacityExceeded) ||
		errors.Is(err, ErrArticleCountMismatch)
}
