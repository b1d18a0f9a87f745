package domain

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionConflict = errors.New("session version conflict")
)

type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *Session) error

	// GetByID retrieves a single active (non-deleted) session by its ID.
	GetByID(ctx context.Context, id string) (*Session, error)

	// List retrieves every active session, ordered by date ascending.
	// The analytics pipeline always operates on the full collection.
	List(ctx context.Context) ([]*Session, error)

	// ListByDateRange retrieves active sessions whose date falls in
	// [from, to] inclusive, both YYYY-MM-DD strings.
	ListByDateRange(ctx context.Context, from, to string) ([]*Session, error)

	// Update modifies an existing session.
	// Implementations must handle optimistic locking (version check).
	Update(ctx context.Context, session *Session) error

	// Delete performs a soft delete on the session.
	Delete(ctx context.Context, id string) error

	// ReplaceAll atomically swaps the whole collection. Used by import;
	// either every record is written or none is.
	ReplaceAll(ctx context.Context, sessions []*Session) error
}

type BadgeStateRepository interface {
	// Load retrieves the persisted unlock state for every known badge.
	// An empty slice means nothing has been unlocked yet.
	Load(ctx context.Context) ([]BadgeState, error)

	// Save replaces the persisted unlock state wholesale.
	Save(ctx context.Context, states []BadgeState) error
}
