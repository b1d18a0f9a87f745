package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davidereni/studylog/internal/core/domain"
)

var _ domain.SessionRepository = (*PostgresSessionRepository)(nil)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// EnsureSchema creates the sessions table and its indexes if missing.
// The date column stores the YYYY-MM-DD bucketing key verbatim; analytics
// compares it lexicographically, so no timezone conversion happens in SQL.
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date CHAR(10) NOT NULL,
		time_slot TEXT NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		duration INTEGER NOT NULL CHECK (duration > 0),
		content TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date) WHERE deleted_at IS NULL;
	`

	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sessions (
			id, date, time_slot, start_time, end_time,
			duration, content, notes,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :date, :time_slot, :start_time, :end_time,
			:duration, :content, :notes,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrSessionConflict
		}
		return err
	}
	return nil
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	query := `SELECT * FROM sessions WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *PostgresSessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	sessions := []*domain.Session{}

	query := `
		SELECT * FROM sessions
		WHERE deleted_at IS NULL
		ORDER BY date ASC, start_time ASC`

	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) ListByDateRange(ctx context.Context, from, to string) ([]*domain.Session, error) {
	sessions := []*domain.Session{}

	query := `
		SELECT * FROM sessions
		WHERE date >= $1
		  AND date <= $2
		  AND deleted_at IS NULL
		ORDER BY date ASC, start_time ASC`

	if err := r.db.SelectContext(ctx, &sessions, query, from, to); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	session.Version++
	session.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE sessions
		SET date = :date,
		    time_slot = :time_slot,
		    start_time = :start_time,
		    end_time = :end_time,
		    duration = :duration,
		    content = :content,
		    notes = :notes,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic lock check
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, session.ID)
		if !exists {
			return domain.ErrSessionNotFound
		}
		return domain.ErrSessionConflict
	}

	return nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	now := time.Now().UTC()

	query := `
		UPDATE sessions
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// ReplaceAll swaps the whole collection inside one transaction so a failed
// import leaves the previous data untouched.
func (r *PostgresSessionRepository) ReplaceAll(ctx context.Context, sessions []*domain.Session) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (
			id, date, time_slot, start_time, end_time,
			duration, content, notes,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :date, :time_slot, :start_time, :end_time,
			:duration, :content, :notes,
			:version, :created_at, :updated_at, :deleted_at
		)`

	for _, session := range sessions {
		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		if session.Version == 0 {
			session.Version = 1
		}
		if _, err := tx.NamedExecContext(ctx, query, session); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresSessionRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM sessions WHERE id = $1", id)
	return count > 0, err
}
