package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sproutbank/sprout/internal/challenge"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectChallengeColumns = `
	id, goal_id, target_amount, start_date, end_date, bonus_amount, status, completed_at, created_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChallenge(s scanner) (*challenge.Challenge, error) {
	var c challenge.Challenge

	var statusStr string

	if err := s.Scan(
		&c.ID, &c.GoalID, &c.TargetAmount, &c.StartDate, &c.EndDate,
		&c.BonusAmount, &statusStr, &c.CompletedAt, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = challenge.Status(statusStr)

	return &c, nil
}

func (s *Store) CreateChallenge(ctx context.Context, c *challenge.Challenge) error {
	// The partial unique index on (goal_id) WHERE status = 'active' enforces
	// the one-active-challenge rule.
	query := `
		INSERT INTO goal_challenges (goal_id, target_amount, start_date, end_date, bonus_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.GoalID,
		c.TargetAmount,
		c.StartDate,
		c.EndDate,
		c.BonusAmount,
		c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return challenge.ErrActiveExists
		}

		return fmt.Errorf("creating challenge: %w", err)
	}

	return nil
}

func (s *Store) GetChallenge(ctx context.Context, id uuid.UUID) (*challenge.Challenge, error) {
	query := `SELECT ` + selectChallengeColumns + ` FROM goal_challenges WHERE id = $1`

	c, err := scanChallenge(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, challenge.ErrNotFound
		}

		return nil, fmt.Errorf("getting challenge: %w", err)
	}

	return c, nil
}

func (s *Store) ActiveChallenge(ctx context.Context, goalID uuid.UUID) (*challenge.Challenge, error) {
	query := `SELECT ` + selectChallengeColumns + `
		FROM goal_challenges
		WHERE goal_id = $1 AND status = 'active'`

	c, err := scanChallenge(s.db.QueryRowContext(ctx, query, goalID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, challenge.ErrNotFound
		}

		return nil, fmt.Errorf("getting active challenge: %w", err)
	}

	return c, nil
}

func (s *Store) CancelChallenge(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE goal_challenges
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancelling challenge: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancelling challenge: %w", err)
	}

	if affected == 0 {
		// Distinguish a missing row from an already-resolved challenge.
		if _, err := s.GetChallenge(ctx, id); err != nil {
			return err
		}

		return challenge.ErrNotActive
	}

	return nil
}

// FailExpired locks and fails expired rows one UPDATE, which takes per-row
// locks only, so it runs alongside live contributions on other goals.
func (s *Store) FailExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE goal_challenges
		SET status = 'failed'
		WHERE status = 'active' AND end_date < $1
	`

	res, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failing expired challenges: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failing expired challenges: %w", err)
	}

	return affected, nil
}
