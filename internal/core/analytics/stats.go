package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/davidereni/studylog/internal/core/domain"
)

// CalculateStats derives the full aggregate snapshot from the session
// collection. Zero sessions yields all-zero fields, never a fault.
//
// The week window is the ISO week containing now (Monday through Sunday);
// the month window is now's calendar month. Both are inclusive and filter
// on the session's Date key, which sorts lexicographically.
func CalculateStats(sessions []*domain.Session, now time.Time) domain.UserStats {
	stats := domain.UserStats{
		TotalSessions: len(sessions),
	}

	weekStart, weekEnd := weekWindow(now)
	monthStart, monthEnd := monthWindow(now)

	for _, s := range sessions {
		stats.TotalMinutes += s.Duration

		if s.Date >= weekStart && s.Date <= weekEnd {
			stats.SessionsThisWeek++
			stats.MinutesThisWeek += s.Duration
		}
		if s.Date >= monthStart && s.Date <= monthEnd {
			stats.SessionsThisMonth++
			stats.MinutesThisMonth += s.Duration
		}
	}

	if stats.TotalSessions > 0 {
		stats.AverageSessionDuration = int(math.Round(float64(stats.TotalMinutes) / float64(stats.TotalSessions)))
	}

	days := activeDays(sessions)
	stats.CurrentStreak = currentStreak(days, now)
	stats.LongestStreak = longestStreak(days)

	return stats
}

func weekWindow(now time.Time) (string, string) {
	// Monday-based: Sunday counts as the sixth day of the running week.
	offset := (int(now.Weekday()) + 6) % 7
	start := now.AddDate(0, 0, -offset)
	return FormatDate(start), FormatDate(start.AddDate(0, 0, 6))
}

func monthWindow(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return FormatDate(first), FormatDate(last)
}

func activeDays(sessions []*domain.Session) map[string]bool {
	days := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		days[s.Date] = true
	}
	return days
}

// currentStreak walks backward from now counting consecutive active days.
// A missing today does not break an ongoing streak from yesterday (1-day
// grace period); missing both today and yesterday yields zero.
func currentStreak(days map[string]bool, now time.Time) int {
	anchor := now
	if !days[FormatDate(anchor)] {
		anchor = now.AddDate(0, 0, -1)
		if !days[FormatDate(anchor)] {
			return 0
		}
	}

	streak := 0
	for days[FormatDate(anchor)] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak scans the full distinct-date history for the longest run of
// consecutive days. It is independent of currentStreak and unaffected by
// gaps after the longest run.
func longestStreak(days map[string]bool) int {
	if len(days) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(days))
	for d := range days {
		t, err := time.Parse(domain.DateLayout, d)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest := 0
	run := 0
	for i, d := range dates {
		if i > 0 && FormatDate(dates[i-1].AddDate(0, 0, 1)) == FormatDate(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
