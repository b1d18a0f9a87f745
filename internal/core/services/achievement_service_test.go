package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidereni/studylog/internal/core/analytics"
	"github.com/davidereni/studylog/internal/core/domain"
	"github.com/davidereni/studylog/internal/core/services"
)

func TestAchievementService_Evaluate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	today := analytics.FormatDate(now)

	t.Run("First session unlocks and persists", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		badgeRepo := new(MockBadgeRepo)
		svc := services.NewAchievementService(sessionRepo, badgeRepo)

		sessionRepo.On("List", ctx).Return([]*domain.Session{{Date: today, Duration: 30}}, nil)
		badgeRepo.On("Load", ctx).Return([]domain.BadgeState{}, nil)
		badgeRepo.On("Save", ctx, mock.AnythingOfType("[]domain.BadgeState")).Return(nil)

		badges, newly, err := svc.Evaluate(ctx, now)

		require.NoError(t, err)
		assert.Len(t, badges, len(domain.Catalog()))
		require.NotEmpty(t, newly)

		ids := make([]string, 0, len(newly))
		for _, b := range newly {
			ids = append(ids, b.ID)
		}
		assert.Contains(t, ids, "content-1")
		badgeRepo.AssertExpectations(t)
	})

	t.Run("Nothing new: state is not rewritten", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		badgeRepo := new(MockBadgeRepo)
		svc := services.NewAchievementService(sessionRepo, badgeRepo)

		unlockedAt := now.AddDate(0, 0, -7)
		previous := []domain.BadgeState{
			{BadgeID: "content-1", Unlocked: true, UnlockedAt: &unlockedAt},
			{BadgeID: "time-60", Unlocked: true, UnlockedAt: &unlockedAt},
		}

		// One short session: already-unlocked badges stay, nothing new.
		sessionRepo.On("List", ctx).Return([]*domain.Session{{Date: today, Duration: 10}}, nil)
		badgeRepo.On("Load", ctx).Return(previous, nil)

		badges, newly, err := svc.Evaluate(ctx, now)

		require.NoError(t, err)
		assert.Empty(t, newly)
		badgeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		for _, b := range badges {
			if b.ID == "time-60" {
				assert.True(t, b.Unlocked, "monotonic unlock must survive a weekly regression")
				require.NotNil(t, b.UnlockedAt)
				assert.Equal(t, unlockedAt, *b.UnlockedAt)
			}
		}
	})

	t.Run("Empty store yields locked catalog without faulting", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		badgeRepo := new(MockBadgeRepo)
		svc := services.NewAchievementService(sessionRepo, badgeRepo)

		sessionRepo.On("List", ctx).Return([]*domain.Session{}, nil)
		badgeRepo.On("Load", ctx).Return([]domain.BadgeState{}, nil)

		badges, newly, err := svc.Evaluate(ctx, now)

		require.NoError(t, err)
		assert.Empty(t, newly)
		for _, b := range badges {
			assert.False(t, b.Unlocked)
			assert.Nil(t, b.UnlockedAt)
		}
	})

	t.Run("Fail: repo errors propagate", func(t *testing.T) {
		sessionRepo := new(MockSessionRepo)
		badgeRepo := new(MockBadgeRepo)
		svc := services.NewAchievementService(sessionRepo, badgeRepo)

		dbErr := errors.New("query timeout")
		sessionRepo.On("List", ctx).Return(nil, dbErr)

		_, _, err := svc.Evaluate(ctx, now)
		assert.ErrorIs(t, err, dbErr)
	})
}
