package domain

import (
	"errors"
	"time"
)

var (
	ErrUnknownBadge = errors.New("unknown badge id")
)

const (
	BadgeTypeStreak  = "streak"
	BadgeTypeTime    = "time"
	BadgeTypeContent = "content"
)

// BadgeDefinition is a static catalog entry. IDs are stable identifiers and
// must never be reused for a different threshold once shipped: persisted
// unlock state is keyed by ID.
type BadgeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	Requirement int    `json:"requirement"`
}

// BadgeState is the persisted, dynamic part of a badge. Unlocked is
// monotonic: once true it never reverts, and UnlockedAt is written exactly
// once at the first transition.
type BadgeState struct {
	BadgeID    string     `json:"badge_id" db:"badge_id"`
	Unlocked   bool       `json:"unlocked" db:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty" db:"unlocked_at"`
}

// Badge is a catalog definition merged with its unlock state.
type Badge struct {
	BadgeDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

func (b Badge) State() BadgeState {
	return BadgeState{
		BadgeID:    b.ID,
		Unlocked:   b.Unlocked,
		UnlockedAt: b.UnlockedAt,
	}
}

// Catalog returns the shipped badge definitions, in display order.
func Catalog() []BadgeDefinition {
	return []BadgeDefinition{
		{ID: "streak-3", Name: "Warming Up", Description: "Keep a 3-day streak", Icon: "flame", Type: BadgeTypeStreak, Requirement: 3},
		{ID: "streak-7", Name: "Full Week", Description: "Keep a 7-day streak", Icon: "calendar", Type: BadgeTypeStreak, Requirement: 7},
		{ID: "streak-30", Name: "Habit Formed", Description: "Keep a 30-day streak", Icon: "trophy", Type: BadgeTypeStreak, Requirement: 30},
		{ID: "time-60", Name: "First Hour", Description: "Log 60 minutes in a week", Icon: "clock", Type: BadgeTypeTime, Requirement: 60},
		{ID: "time-300", Name: "Deep Diver", Description: "Log 300 minutes in a week", Icon: "hourglass", Type: BadgeTypeTime, Requirement: 300},
		{ID: "time-1000", Name: "Marathon Week", Description: "Log 1000 minutes in a week", Icon: "medal", Type: BadgeTypeTime, Requirement: 1000},
		{ID: "content-1", Name: "First Step", Description: "Log your first session", Icon: "sparkles", Type: BadgeTypeContent, Requirement: 1},
		{ID: "content-10", Name: "Getting Serious", Description: "Log 10 sessions", Icon: "book", Type: BadgeTypeContent, Requirement: 10},
		{ID: "content-100", Name: "Centurion", Description: "Log 100 sessions", Icon: "crown", Type: BadgeTypeContent, Requirement: 100},
	}
}
