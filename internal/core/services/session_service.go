package services

import (
	"context"

	"github.com/davidereni/studylog/internal/core/domain"
	"github.com/davidereni/studylog/internal/core/workers"
)

type SessionService struct {
	repo   domain.SessionRepository
	worker *workers.AchievementWorker
}

func NewSessionService(repo domain.SessionRepository, worker *workers.AchievementWorker) *SessionService {
	return &SessionService{
		repo:   repo,
		worker: worker,
	}
}

type CreateSessionInput struct {
	Date      string
	TimeSlot  string
	StartTime string
	EndTime   string
	Content   string
	Notes     string
}

type UpdateSessionInput struct {
	ID        string
	Date      string
	TimeSlot  string
	StartTime string
	EndTime   string
	Content   string
	Notes     string
	Version   int
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error) {
	session, err := domain.NewSession(input.Date, input.TimeSlot, input.StartTime, input.EndTime, input.Content, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.worker.Enqueue()

	return session, nil
}

func (s *SessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.repo.List(ctx)
}

func (s *SessionService) ListByDateRange(ctx context.Context, from, to string) ([]*domain.Session, error) {
	return s.repo.ListByDateRange(ctx, from, to)
}

func (s *SessionService) Update(ctx context.Context, input UpdateSessionInput) (*domain.Session, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrSessionConflict
	}

	if err := existing.Update(input.Date, input.TimeSlot, input.StartTime, input.EndTime, input.Content, input.Notes); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue()

	return existing, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.worker.Enqueue()

	return nil
}
