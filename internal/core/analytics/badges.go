package analytics

import (
	"time"

	"github.com/davidereni/studylog/internal/core/domain"
)

// EvaluateBadges merges the static catalog with previously persisted unlock
// state and the current statistics. It returns one merged badge per catalog
// definition, in catalog order, plus the subset that transitioned to
// unlocked in this evaluation.
//
// Unlocks are monotonic: a badge unlocked in a previous evaluation stays
// unlocked even if the statistics have since regressed, and its UnlockedAt
// is never overwritten. The evaluator does not persist anything; the caller
// owns writing the updated state back.
func EvaluateBadges(stats domain.UserStats, catalog []domain.BadgeDefinition, previous []domain.BadgeState, now time.Time) (updated []domain.Badge, newlyUnlocked []domain.Badge) {
	prevByID := make(map[string]domain.BadgeState, len(previous))
	for _, s := range previous {
		prevByID[s.BadgeID] = s
	}

	updated = make([]domain.Badge, 0, len(catalog))

	for _, def := range catalog {
		badge := domain.Badge{BadgeDefinition: def}

		if prev, ok := prevByID[def.ID]; ok && prev.Unlocked {
			badge.Unlocked = true
			badge.UnlockedAt = prev.UnlockedAt
		} else if eligible(stats, def) {
			unlockedAt := now.UTC()
			badge.Unlocked = true
			badge.UnlockedAt = &unlockedAt
			newlyUnlocked = append(newlyUnlocked, badge)
		}

		updated = append(updated, badge)
	}

	return updated, newlyUnlocked
}

func eligible(stats domain.UserStats, def domain.BadgeDefinition) bool {
	switch def.Type {
	case domain.BadgeTypeStreak:
		return stats.CurrentStreak >= def.Requirement
	case domain.BadgeTypeTime:
		return stats.MinutesThisWeek >= def.Requirement
	case domain.BadgeTypeContent:
		return stats.TotalSessions >= def.Requirement
	default:
		return false
	}
}

// States extracts the persistable dynamic part of a merged badge list.
func States(badges []domain.Badge) []domain.BadgeState {
	states := make([]domain.BadgeState, 0, len(badges))
	for _, b := range badges {
		states = append(states, b.State())
	}
	return states
}
