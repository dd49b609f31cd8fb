package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectGoalColumns = `
	g.id, g.owner_child_id, g.name, g.target_amount, g.current_amount, g.status,
	g.priority, g.auto_transfer_amount, g.auto_transfer_percent, g.purchase_notes, g.created_at, g.updated_at
`

// scanGoal reads a goal row in selectGoalColumns order.
func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	var statusStr string

	var autoAmount, autoPercent decimal.NullDecimal

	if err := s.Scan(
		&g.ID, &g.OwnerChildID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &statusStr,
		&g.Priority, &autoAmount, &autoPercent, &g.PurchaseNotes, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	g.Status = goal.Status(statusStr)

	if autoAmount.Valid {
		g.AutoTransferAmount = &autoAmount.Decimal
	}

	if autoPercent.Valid {
		g.AutoTransferPercent = &autoPercent.Decimal
	}

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal, ladder []*goal.Milestone) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	goalQuery := `
		INSERT INTO savings_goals (owner_child_id, name, target_amount, current_amount, status, priority, auto_transfer_amount, auto_transfer_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	var autoAmount, autoPercent any
	if g.AutoTransferAmount != nil {
		autoAmount = *g.AutoTransferAmount
	}

	if g.AutoTransferPercent != nil {
		autoPercent = *g.AutoTransferPercent
	}

	err = dbTx.QueryRowContext(ctx, goalQuery,
		g.OwnerChildID,
		g.Name,
		g.TargetAmount,
		g.CurrentAmount,
		g.Status,
		g.Priority,
		autoAmount,
		autoPercent,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	milestoneQuery := `
		INSERT INTO goal_milestones (goal_id, percent_complete, target_amount, bonus_amount, is_achieved)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id
	`

	for _, m := range ladder {
		m.GoalID = g.ID

		if err := dbTx.QueryRowContext(ctx, milestoneQuery,
			m.GoalID,
			m.PercentComplete,
			m.TargetAmount,
			m.BonusAmount,
		).Scan(&m.ID); err != nil {
			return fmt.Errorf("creating milestone %d%%: %w", m.PercentComplete, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing goal creation: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM savings_goals g WHERE g.id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, childID uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM savings_goals g
		WHERE g.owner_child_id = $1
		ORDER BY g.priority ASC, g.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE savings_goals
		SET name = $1, priority = $2, auto_transfer_amount = $3, auto_transfer_percent = $4, updated_at = NOW()
		WHERE id = $5
	`

	var autoAmount, autoPercent any
	if g.AutoTransferAmount != nil {
		autoAmount = *g.AutoTransferAmount
	}

	if g.AutoTransferPercent != nil {
		autoPercent = *g.AutoTransferPercent
	}

	_, err := s.db.ExecContext(ctx, query, g.Name, g.Priority, autoAmount, autoPercent, g.ID)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status goal.Status) error {
	query := `
		UPDATE savings_goals
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating goal status: %w", err)
	}

	return nil
}

func (s *Store) ListMilestones(ctx context.Context, goalID uuid.UUID) ([]*goal.Milestone, error) {
	query := `
		SELECT id, goal_id, percent_complete, target_amount, bonus_amount, is_achieved, achieved_at
		FROM goal_milestones
		WHERE goal_id = $1
		ORDER BY percent_complete ASC
	`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*goal.Milestone

	for rows.Next() {
		var m goal.Milestone
		if err := rows.Scan(&m.ID, &m.GoalID, &m.PercentComplete, &m.TargetAmount, &m.BonusAmount, &m.IsAchieved, &m.AchievedAt); err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}

		milestones = append(milestones, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestone rows: %w", err)
	}

	return milestones, nil
}

func (s *Store) ListContributions(ctx context.Context, goalID uuid.UUID) ([]*goal.Contribution, error) {
	query := `
		SELECT id, goal_id, amount, type, description, goal_balance_after, source_id, created_at
		FROM savings_contributions
		WHERE goal_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*goal.Contribution

	for rows.Next() {
		var c goal.Contribution

		var typeStr string

		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &typeStr, &c.Description, &c.GoalBalanceAfter, &c.SourceID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contribution: %w", err)
		}

		c.Type = goal.ContributionType(typeStr)

		contributions = append(contributions, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contribution rows: %w", err)
	}

	return contributions, nil
}

func (s *Store) Balance(ctx context.Context, childID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := s.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE child_id = $1`, childID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, goal.ErrNotFound
		}

		return decimal.Zero, fmt.Errorf("getting balance: %w", err)
	}

	return balance, nil
}
