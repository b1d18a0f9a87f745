package workers

import (
	"context"
	"log"
	"time"

	"github.com/davidereni/studylog/internal/core/analytics"
	"github.com/davidereni/studylog/internal/core/domain"
)

type SessionRepository interface {
	List(ctx context.Context) ([]*domain.Session, error)
}

type BadgeStateRepository interface {
	Load(ctx context.Context) ([]domain.BadgeState, error)
	Save(ctx context.Context, states []domain.BadgeState) error
}

// AchievementWorker re-evaluates the badge catalog in the background after
// session mutations, so unlock transitions are persisted without blocking
// the write path.
type AchievementWorker struct {
	sessionRepo SessionRepository
	badgeRepo   BadgeStateRepository
	jobs        chan struct{}
}

func NewAchievementWorker(sessionRepo SessionRepository, badgeRepo BadgeStateRepository) *AchievementWorker {
	return &AchievementWorker{
		sessionRepo: sessionRepo,
		badgeRepo:   badgeRepo,
		jobs:        make(chan struct{}, 16),
	}
}

func (w *AchievementWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Achievement worker started in background...")
		for {
			select {
			case <-w.jobs:
				w.processJob(ctx)
			case <-ctx.Done():
				log.Println("Achievement worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue requests a re-evaluation. Evaluations are idempotent over the
// same session collection, so a full queue can safely drop the signal.
func (w *AchievementWorker) Enqueue() {
	select {
	case w.jobs <- struct{}{}:
	default:
	}
}

func (w *AchievementWorker) processJob(ctx context.Context) {
	sessions, err := w.sessionRepo.List(ctx)
	if err != nil {
		log.Printf("Worker error fetching sessions: %v", err)
		return
	}

	previous, err := w.badgeRepo.Load(ctx)
	if err != nil {
		log.Printf("Worker error fetching badge state: %v", err)
		return
	}

	now := time.Now().UTC()
	stats := analytics.CalculateStats(sessions, now)
	updated, newlyUnlocked := analytics.EvaluateBadges(stats, domain.Catalog(), previous, now)

	if len(newlyUnlocked) == 0 && len(previous) == len(updated) {
		return
	}

	if err := w.badgeRepo.Save(ctx, analytics.States(updated)); err != nil {
		log.Printf("Worker failed to persist badge state: %v", err)
		return
	}

	for _, b := range newlyUnlocked {
		log.Printf("Badge unlocked: %s (%s)", b.Name, b.ID)
	}
}
