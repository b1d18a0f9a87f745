package domain

// UserStats is a snapshot aggregate, fully derivable from the session
// collection plus a reference time. It is never persisted on its own.
type UserStats struct {
	TotalSessions          int `json:"total_sessions"`
	TotalMinutes           int `json:"total_minutes"`
	CurrentStreak          int `json:"current_streak"`
	LongestStreak          int `json:"longest_streak"`
	AverageSessionDuration int `json:"average_session_duration"`
	SessionsThisWeek       int `json:"sessions_this_week"`
	SessionsThisMonth      int `json:"sessions_this_month"`
	MinutesThisWeek        int `json:"minutes_this_week"`
	MinutesThisMonth       int `json:"minutes_this_month"`
}

// HeatmapEntry is one calendar day's aggregated activity. Level is a
// quantization of Count on a 0-5 color scale.
type HeatmapEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Backup is the export/import document: exactly two keys, both arrays.
type Backup struct {
	Sessions []*Session   `json:"sessions"`
	Badges   []BadgeState `json:"badges"`
}
