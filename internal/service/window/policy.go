package window

const (
	DefaultMinPerDay            = 50
	DefaultMaxPerDay            = 80
	DefaultSoftMaxPerDay        = 100
	DefaultAbsoluteMaxPerDay    = 120
	DefaultRecommendedMaxPerDay = 80
	DefaultMaxSpanDays          = 365
)

// Policy holds the throughput ceilings shared by every window.
type Policy struct {
	// SoftMaxPerDay drives capacity and peak detection. Exceeding it is
	// allowed but logged.
	SoftMaxPerDay int
	// AbsoluteMaxPerDay is the hard limit enforced at construction.
	AbsoluteMaxPerDay int
	// RecommendedMaxPerDay caps the max used when sizing a window from an
	// item count.
	RecommendedMaxPerDay int
	MaxSpanDays          int
}

func DefaultPolicy() Policy {
	return Policy{
		SoftMaxPerDay:        DefaultSoftMaxPerDay,
		AbsoluteMaxPerDay:    DefaultAbsoluteMaxPerDay,
		RecommendedMaxPerDay: DefaultRecommendedMaxPerDay,
		MaxSpanDays:          DefaultMaxSpanDays,
	}
}

// normalized replaces non-positive fields with defaults.
func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.SoftMaxPerDay <= 0 {
		p.SoftMaxPerDay = d.SoftMaxPerDay
	}
	if p.AbsoluteMaxPerDay <= 0 {
		p.AbsoluteMaxPerDay = d.AbsoluteMaxPerDay
	}
	if p.RecommendedMaxPerDay <= 0 {
		p.RecommendedMaxPerDay = d.RecommendedMaxPerDay
	}
	if p.MaxSpanDays <= 0 {
		p.MaxSpanDays = d.MaxSpanDays
	}
	return p
}
