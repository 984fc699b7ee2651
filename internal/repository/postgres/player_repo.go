package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rosterscan/internal/domain"
	"rosterscan/internal/port"
)

type playerRepo struct {
	db *sqlx.DB
}

// NewPlayerRepo creates a new PostgreSQL-backed PlayerRepository.
func NewPlayerRepo(db *sqlx.DB) port.PlayerRepository {
	return &playerRepo{db: db}
}

func (r *playerRepo) ListByRoster(ctx context.Context, rosterID uuid.UUID) ([]domain.Player, error) {
	var players []domain.Player
	err := r.db.SelectContext(ctx, &players,
		`SELECT * FROM players WHERE roster_id = $1 ORDER BY last_name, first_name, position`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("playerRepo.ListByRoster: %w", err)
	}
	return players, nil
}

func (r *playerRepo) ApplyBatch(ctx context.Context, inserted, updated []domain.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("playerRepo.ApplyBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i := range inserted {
		p := &inserted[i]
		p.CreatedAt = now
		p.UpdatedAt = now
		// A concurrent job may have inserted the same identity since our
		// snapshot; the later write wins and attributes are unioned.
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO players (
				id, roster_id, first_name, last_name, suffix, position,
				jersey, overall, attributes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (roster_id, LOWER(first_name), LOWER(last_name), position) DO UPDATE SET
				jersey = EXCLUDED.jersey,
				overall = EXCLUDED.overall,
				attributes = players.attributes || EXCLUDED.attributes,
				updated_at = EXCLUDED.updated_at
			RETURNING id, created_at`,
			p.ID, p.RosterID, p.FirstName, p.LastName, p.Suffix, p.Position,
			p.Jersey, p.Overall, p.Attributes, p.CreatedAt, p.UpdatedAt,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("playerRepo.ApplyBatch insert %s: %w", p.ID, err)
		}
	}

	for i := range updated {
		p := &updated[i]
		p.UpdatedAt = now
		result, err := tx.ExecContext(ctx,
			`UPDATE players SET
				first_name = $1, suffix = $2, jersey = $3, overall = $4,
				attributes = $5, updated_at = $6
			 WHERE id = $7 AND roster_id = $8`,
			p.FirstName, p.Suffix, p.Jersey, p.Overall,
			p.Attributes, p.UpdatedAt,
			p.ID, p.RosterID)
		if err != nil {
			return fmt.Errorf("playerRepo.ApplyBatch update %s: %w", p.ID, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("playerRepo.ApplyBatch update %s: %w", p.ID, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("playerRepo.ApplyBatch commit: %w", err)
	}
	return nil
}
