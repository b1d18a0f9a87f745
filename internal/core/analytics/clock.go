// Package analytics holds the pure computation core: date/duration helpers,
// heatmap bucketing, streak/statistics aggregation, and badge evaluation.
// Every function is deterministic over its inputs; "now" is always an
// explicit parameter, never read from the wall clock.
package analytics

import (
	"fmt"
	"time"

	"github.com/davidereni/studylog/internal/core/domain"
)

// CalculateDuration returns end minus start in minutes. The result may be
// zero or negative when end <= start; callers must reject non-positive
// durations as invalid sessions.
func CalculateDuration(start, end string) int {
	return domain.ClockMinutes(end) - domain.ClockMinutes(start)
}

// FormatDate renders a time as the canonical YYYY-MM-DD bucketing key.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// FormatDisplayDate renders a YYYY-MM-DD date for display relative to now:
// "Today", "Yesterday", or "Jan 2, 2006". Unparseable input is returned
// verbatim.
func FormatDisplayDate(date string, now time.Time) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}

	switch date {
	case FormatDate(now):
		return "Today"
	case FormatDate(now.AddDate(0, 0, -1)):
		return "Yesterday"
	}

	return t.Format("Jan 2, 2006")
}

// FormatDuration renders minutes as "{h}h {m}m", omitting a zero component.
// Zero minutes renders as "0m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60

	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
