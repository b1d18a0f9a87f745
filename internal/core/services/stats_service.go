package services

import (
	"context"
	"log"
	"time"

	"github.com/davidereni/studylog/internal/core/analytics"
	"github.com/davidereni/studylog/internal/core/domain"
)

type StatsService struct {
	sessionRepo domain.SessionRepository
}

func NewStatsService(sessionRepo domain.SessionRepository) *StatsService {
	return &StatsService{
		sessionRepo: sessionRepo,
	}
}

// loadSessions degrades a store failure to the empty collection: the
// analytics pipeline must produce the all-zero snapshot rather than fault
// when persistence is unavailable.
func (s *StatsService) loadSessions(ctx context.Context) []*domain.Session {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		log.Printf("Stats degraded to empty dataset: %v", err)
		return nil
	}
	return sessions
}

func (s *StatsService) Overview(ctx context.Context, now time.Time) domain.UserStats {
	return analytics.CalculateStats(s.loadSessions(ctx), now)
}

func (s *StatsService) Heatmap(ctx context.Context, windowDays int, referenceDate time.Time) []domain.HeatmapEntry {
	return analytics.GenerateHeatmap(s.loadSessions(ctx), windowDays, referenceDate)
}
