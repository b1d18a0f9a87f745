package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidereni/studylog/internal/core/domain"
)

func testCatalog() []domain.BadgeDefinition {
	return []domain.BadgeDefinition{
		{ID: "streak-3", Name: "Warming Up", Type: domain.BadgeTypeStreak, Requirement: 3},
		{ID: "time-60", Name: "First Hour", Type: domain.BadgeTypeTime, Requirement: 60},
		{ID: "content-1", Name: "First Step", Type: domain.BadgeTypeContent, Requirement: 1},
	}
}

func TestEvaluateBadges(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Fresh state unlocks eligible badges only", func(t *testing.T) {
		stats := domain.UserStats{CurrentStreak: 3, MinutesThisWeek: 30, TotalSessions: 5}

		updated, newly := EvaluateBadges(stats, testCatalog(), nil, now)

		require.Len(t, updated, 3)
		assert.True(t, updated[0].Unlocked, "streak badge")
		assert.False(t, updated[1].Unlocked, "time badge")
		assert.True(t, updated[2].Unlocked, "content badge")

		require.Len(t, newly, 2)
		assert.Equal(t, "streak-3", newly[0].ID)
		assert.Equal(t, "content-1", newly[1].ID)

		for _, b := range newly {
			require.NotNil(t, b.UnlockedAt)
			assert.Equal(t, now, *b.UnlockedAt)
		}
	})

	t.Run("Unlocked badges stay unlocked when stats regress", func(t *testing.T) {
		earlier := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		previous := []domain.BadgeState{
			{BadgeID: "streak-3", Unlocked: true, UnlockedAt: &earlier},
		}

		// Streak has reset to zero since the original unlock.
		stats := domain.UserStats{CurrentStreak: 0}

		updated, newly := EvaluateBadges(stats, testCatalog(), previous, now)

		require.Len(t, updated, 3)
		assert.True(t, updated[0].Unlocked)
		require.NotNil(t, updated[0].UnlockedAt)
		assert.Equal(t, earlier, *updated[0].UnlockedAt, "UnlockedAt must not be overwritten")
		assert.Empty(t, newly)
	})

	t.Run("Already unlocked badges are not reported as new", func(t *testing.T) {
		earlier := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		previous := []domain.BadgeState{
			{BadgeID: "content-1", Unlocked: true, UnlockedAt: &earlier},
		}

		stats := domain.UserStats{TotalSessions: 50}

		_, newly := EvaluateBadges(stats, testCatalog(), previous, now)
		assert.Empty(t, newly)
	})

	t.Run("Output follows catalog order with one entry per definition", func(t *testing.T) {
		updated, _ := EvaluateBadges(domain.UserStats{}, testCatalog(), nil, now)

		require.Len(t, updated, 3)
		assert.Equal(t, "streak-3", updated[0].ID)
		assert.Equal(t, "time-60", updated[1].ID)
		assert.Equal(t, "content-1", updated[2].ID)
	})

	t.Run("Stale state for retired badge ids is dropped", func(t *testing.T) {
		earlier := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		previous := []domain.BadgeState{
			{BadgeID: "retired-badge", Unlocked: true, UnlockedAt: &earlier},
		}

		updated, _ := EvaluateBadges(domain.UserStats{}, testCatalog(), previous, now)

		require.Len(t, updated, 3)
		for _, b := range updated {
			assert.NotEqual(t, "retired-badge", b.ID)
		}
	})

	t.Run("Time badges key off weekly minutes", func(t *testing.T) {
		stats := domain.UserStats{TotalMinutes: 10000, MinutesThisWeek: 59}

		updated, _ := EvaluateBadges(stats, testCatalog(), nil, now)
		assert.False(t, updated[1].Unlocked)

		stats.MinutesThisWeek = 60
		updated, _ = EvaluateBadges(stats, testCatalog(), nil, now)
		assert.True(t, updated[1].Unlocked)
	})
}

func TestStates_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	stats := domain.UserStats{CurrentStreak: 3, TotalSessions: 1}

	updated, _ := EvaluateBadges(stats, testCatalog(), nil, now)
	states := States(updated)

	require.Len(t, states, len(updated))
	for i, s := range states {
		assert.Equal(t, updated[i].ID, s.BadgeID)
		assert.Equal(t, updated[i].Unlocked, s.Unlocked)
	}

	// Re-evaluating from the extracted state changes nothing.
	again, newly := EvaluateBadges(stats, testCatalog(), states, now.Add(time.Hour))
	assert.Empty(t, newly)
	assert.Equal(t, updated, again)
}
