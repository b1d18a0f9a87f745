package services

import (
	"context"
	"time"

	"github.com/davidereni/studylog/internal/core/analytics"
	"github.com/davidereni/studylog/internal/core/domain"
)

type AchievementService struct {
	sessionRepo domain.SessionRepository
	badgeRepo   domain.BadgeStateRepository
	catalog     []domain.BadgeDefinition
}

func NewAchievementService(sessionRepo domain.SessionRepository, badgeRepo domain.BadgeStateRepository) *AchievementService {
	return &AchievementService{
		sessionRepo: sessionRepo,
		badgeRepo:   badgeRepo,
		catalog:     domain.Catalog(),
	}
}

// Evaluate recomputes eligibility from the current session collection,
// persists any unlock transitions, and returns the merged badge list in
// catalog order plus the badges unlocked by this evaluation.
func (s *AchievementService) Evaluate(ctx context.Context, now time.Time) ([]domain.Badge, []domain.Badge, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	previous, err := s.badgeRepo.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := analytics.CalculateStats(sessions, now)
	updated, newlyUnlocked := analytics.EvaluateBadges(stats, s.catalog, previous, now)

	if len(newlyUnlocked) > 0 {
		if err := s.badgeRepo.Save(ctx, analytics.States(updated)); err != nil {
			return nil, nil, err
		}
	}

	return updated, newlyUnlocked, nil
}
