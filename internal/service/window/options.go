package window

import (
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
)

type options struct {
	policy Policy
	clock  calendar.Clock
}

type Option func(*options)

func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithClock sets the clock used to reject start dates in the past.
func WithClock(c calendar.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		policy: DefaultPolicy(),
		clock:  calendar.SystemClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.policy = o.policy.normalized()
	return o
}
