package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/davidereni/studylog/internal/core/domain"
)

var _ domain.BadgeStateRepository = (*PostgresBadgeStateRepository)(nil)

// PostgresBadgeStateRepository persists only the dynamic unlock state; the
// badge catalog itself ships with the binary.
type PostgresBadgeStateRepository struct {
	db *sqlx.DB
}

func NewPostgresBadgeStateRepository(db *sqlx.DB) *PostgresBadgeStateRepository {
	return &PostgresBadgeStateRepository{db: db}
}

func (r *PostgresBadgeStateRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS badge_states (
		badge_id TEXT PRIMARY KEY,
		unlocked BOOLEAN NOT NULL DEFAULT FALSE,
		unlocked_at TIMESTAMPTZ
	);
	`

	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresBadgeStateRepository) Load(ctx context.Context) ([]domain.BadgeState, error) {
	states := []domain.BadgeState{}

	query := `SELECT * FROM badge_states ORDER BY badge_id ASC`

	if err := r.db.SelectContext(ctx, &states, query); err != nil {
		return nil, err
	}
	return states, nil
}

// Save replaces the state wholesale in one transaction, matching the
// full-collection semantics of the store contract.
func (r *PostgresBadgeStateRepository) Save(ctx context.Context, states []domain.BadgeState) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM badge_states`); err != nil {
		return err
	}

	query := `
		INSERT INTO badge_states (badge_id, unlocked, unlocked_at)
		VALUES (:badge_id, :unlocked, :unlocked_at)`

	for _, state := range states {
		if _, err := tx.NamedExecContext(ctx, query, state); err != nil {
			return err
		}
	}

	return tx.Commit()
}
