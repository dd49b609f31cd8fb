package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertRule replaces the goal's rule parameters while preserving
// total_matched_amount, which belongs to the contribution unit of work.
func (s *Store) UpsertRule(ctx context.Context, rule *matching.Rule) error {
	query := `
		INSERT INTO matching_rules (goal_id, type, match_ratio, max_match_amount, total_matched_amount, is_active, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6, NOW(), NOW())
		ON CONFLICT (goal_id) DO UPDATE SET
			type = EXCLUDED.type,
			match_ratio = EXCLUDED.match_ratio,
			max_match_amount = EXCLUDED.max_match_amount,
			is_active = EXCLUDED.is_active,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING id, total_matched_amount, created_at, updated_at
	`

	var maxMatch any
	if rule.MaxMatchAmount != nil {
		maxMatch = *rule.MaxMatchAmount
	}

	err := s.db.QueryRowContext(ctx, query,
		rule.GoalID,
		rule.Type,
		rule.MatchRatio,
		maxMatch,
		rule.IsActive,
		rule.ExpiresAt,
	).Scan(&rule.ID, &rule.TotalMatchedAmount, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting matching rule: %w", err)
	}

	return nil
}

func (s *Store) GetRule(ctx context.Context, goalID uuid.UUID) (*matching.Rule, error) {
	query := `
		SELECT id, goal_id, type, match_ratio, max_match_amount, total_matched_amount, is_active, expires_at, created_at, updated_at
		FROM matching_rules
		WHERE goal_id = $1
	`

	var rule matching.Rule

	var typeStr string

	var maxMatch decimal.NullDecimal

	err := s.db.QueryRowContext(ctx, query, goalID).Scan(
		&rule.ID, &rule.GoalID, &typeStr, &rule.MatchRatio, &maxMatch,
		&rule.TotalMatchedAmount, &rule.IsActive, &rule.ExpiresAt, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, matching.ErrNotFound
		}

		return nil, fmt.Errorf("getting matching rule: %w", err)
	}

	rule.Type = matching.RuleType(typeStr)

	if maxMatch.Valid {
		rule.MaxMatchAmount = &maxMatch.Decimal
	}

	return &rule, nil
}

func (s *Store) DeactivateRule(ctx context.Context, goalID uuid.UUID) error {
	query := `
		UPDATE matching_rules
		SET is_active = FALSE, updated_at = NOW()
		WHERE goal_id = $1
	`

	res, err := s.db.ExecContext(ctx, query, goalID)
	if err != nil {
		return fmt.Errorf("deactivating matching rule: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivating matching rule: %w", err)
	}

	if affected == 0 {
		return matching.ErrNotFound
	}

	return nil
}
