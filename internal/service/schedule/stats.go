package schedule

import (
	"math"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
)

func computeStats(days []domain.DaySchedule, importedCount, newCount, extraDays int) domain.ScheduleStats {
	stats := domain.ScheduleStats{
		ImportedArticles: importedCount,
		NewArticles:      newCount,
		ExtraDays:        extraDays,
	}

	minCount, maxCount := math.MaxInt, 0
	for _, d := range days {
		n := len(d.Articles)
		if n == 0 {
			continue
		}
		stats.TotalArticles += n
		stats.WorkingDaysUsed++
		minCount = min(minCount, n)
		maxCount = max(maxCount, n)
	}

	if stats.WorkingDaysUsed == 0 {
		return stats
	}

	stats.MinPerDay = minCount
	stats.MaxPerDay = maxCount
	stats.AvgPerDay = round2(float64(stats.TotalArticles) / float64(stats.WorkingDaysUsed))
	stats.DistributionEfficiency = DistributionEfficiency(minCount, maxCount)

	return stats
}

// DistributionEfficiency scores how even a schedule is: 100 when every day
// carries the same load.
func DistributionEfficiency(minCount, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return round2(100 * float64(minCount) / float64(maxCount))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
