package schedule

import "math"

// splitDay divides a day's count between the imported and new pools in
// proportion to what is left in each. count never exceeds the pools' sum.
func splitDay(count, importedLeft, newLeft int) (importedCount, newCount int) {
	pool := importedLeft + newLeft
	if pool <= 0 || count <= 0 {
		return 0, 0
	}
	count = min(count, pool)

	importedCount = int(math.Round(float64(count) * float64(importedLeft) / float64(pool)))
	importedCount = min(importedCount, importedLeft)

	newCount = count - importedCount
	if newCount > newLeft {
		newCount = newLeft
		importedCount = count - newCount
	}
	return importedCount, newCount
}
