package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/davidereni/studylog/internal/core/domain"
)

var _ domain.SessionRepository = (*InMemorySessionRepository)(nil)

// InMemorySessionRepository mirrors the Postgres adapter's semantics
// (soft delete, optimistic locking) for tests and local runs.
type InMemorySessionRepository struct {
	store map[string]*domain.Session

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.Session),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.Version == 0 {
		session.Version = 1
	}

	copied := *session
	r.store[session.ID] = &copied
	return nil
}

func (r *InMemorySessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[id]
	if !ok || session.DeletedAt != nil {
		return nil, domain.ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

func (r *InMemorySessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := []*domain.Session{}
	for _, s := range r.store {
		if s.DeletedAt == nil {
			copied := *s
			sessions = append(sessions, &copied)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})

	return sessions, nil
}

func (r *InMemorySessionRepository) ListByDateRange(ctx context.Context, from, to string) ([]*domain.Session, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	sessions := []*domain.Session{}
	for _, s := range all {
		if s.Date >= from && s.Date <= to {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (r *InMemorySessionRepository) Update(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[session.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrSessionNotFound
	}

	if session.Version != existing.Version {
		return domain.ErrSessionConflict
	}

	copied := *session
	copied.Version++
	r.store[session.ID] = &copied
	session.Version = copied.Version
	return nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.store[id]
	if !ok || session.DeletedAt != nil {
		return domain.ErrSessionNotFound
	}

	now := time.Now().UTC()
	session.DeletedAt = &now
	session.UpdatedAt = now
	return nil
}

func (r *InMemorySessionRepository) ReplaceAll(ctx context.Context, sessions []*domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store := make(map[string]*domain.Session, len(sessions))
	for _, s := range sessions {
		copied := *s
		if copied.Version == 0 {
			copied.Version = 1
		}
		store[s.ID] = &copied
	}

	r.store = store
	return nil
}

var _ domain.BadgeStateRepository = (*InMemoryBadgeStateRepository)(nil)

type InMemoryBadgeStateRepository struct {
	states []domain.BadgeState

	mu sync.RWMutex
}

func NewInMemoryBadgeStateRepository() *InMemoryBadgeStateRepository {
	return &InMemoryBadgeStateRepository{}
}

func (r *InMemoryBadgeStateRepository) Load(ctx context.Context) ([]domain.BadgeState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]domain.BadgeState, len(r.states))
	copy(states, r.states)
	return states, nil
}

func (r *InMemoryBadgeStateRepository) Save(ctx context.Context, states []domain.BadgeState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states = make([]domain.BadgeState, len(states))
	copy(r.states, states)
	return nil
}
