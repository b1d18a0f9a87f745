package analytics

import (
	"time"

	"github.com/davidereni/studylog/internal/core/domain"
)

const DefaultHeatmapWindow = 365

// GenerateHeatmap buckets sessions by calendar day over a fixed window
// ending at referenceDate, oldest day first. The output always has exactly
// windowDays entries, contiguous and ascending; days without sessions
// appear with a zero count.
func GenerateHeatmap(sessions []*domain.Session, windowDays int, referenceDate time.Time) []domain.HeatmapEntry {
	if windowDays <= 0 {
		windowDays = DefaultHeatmapWindow
	}

	counts := make(map[string]int, len(sessions))
	for _, s := range sessions {
		counts[s.Date]++
	}

	entries := make([]domain.HeatmapEntry, 0, windowDays)
	day := referenceDate.AddDate(0, 0, -(windowDays - 1))

	for i := 0; i < windowDays; i++ {
		date := FormatDate(day)
		count := counts[date]
		entries = append(entries, domain.HeatmapEntry{
			Date:  date,
			Count: count,
			Level: heatLevel(count),
		})
		day = day.AddDate(0, 0, 1)
	}

	return entries
}

// heatLevel quantizes a daily count to the 0-5 color scale. Levels 1 and 2
// are reserved in the scale but never produced; the thresholds are kept
// as shipped.
func heatLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count == 1:
		return 3
	case count == 2:
		return 4
	default:
		return 5
	}
}
