package domain

import "time"

// DailyAllocation is the number of articles assigned to one business day.
type DailyAllocation struct {
	Date           time.Time    `json:"date"`
	Count          int          `json:"count"`
	Weekday        time.Weekday `json:"weekday"`
	IsPeakCapacity bool         `json:"is_peak_capacity"`
	IsExtraDay     bool         `json:"is_extra_day,omitempty"`
}

// IsPeak reports whether count reaches 90% of the soft per-day ceiling.
func IsPeak(count, softMaxPerDay int) bool {
	return count*10 >= softMaxPerDay*9
}

func NewDailyAllocation(date time.Time, count, softMaxPerDay int, extra bool) DailyAllocation {
	return DailyAllocation{
		Date:           date,
		Count:          count,
		Weekday:        date.Weekday(),
		IsPeakCapacity: IsPeak(count, softMaxPerDay),
		IsExtraDay:     extra,
	}
}

func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
