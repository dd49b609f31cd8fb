package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/challenge"
	"github.com/sproutbank/sprout/internal/contribution"
	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/matching"
)

// lockWait bounds how long Begin blocks on another worker's unit of work for
// the same goal before surfacing ErrLockTimeout.
const lockWait = 5 * time.Second

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin opens a database transaction and takes the goal's row lock. The lock
// serializes every mutation of the goal and its satellite rows until Commit
// or Rollback; operations on other goals never wait on it.
func (s *Store) Begin(ctx context.Context, goalID uuid.UUID) (contribution.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning unit of work: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockWait.Milliseconds())); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("setting lock timeout: %w", err)
	}

	var id uuid.UUID
	if err := dbTx.QueryRowContext(ctx, `SELECT id FROM savings_goals WHERE id = $1 FOR UPDATE`, goalID).Scan(&id); err != nil {
		dbTx.Rollback()

		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "55P03" {
			return nil, contribution.ErrLockTimeout
		}

		return nil, fmt.Errorf("locking goal: %w", err)
	}

	return &uow{tx: dbTx, goalID: goalID}, nil
}

type uow struct {
	tx     *sql.Tx
	goalID uuid.UUID
}

func (u *uow) Commit() error   { return u.tx.Commit() }
func (u *uow) Rollback() error { return u.tx.Rollback() }

func (u *uow) Goal(ctx context.Context) (*goal.Goal, error) {
	query := `
		SELECT id, owner_child_id, name, target_amount, current_amount, status,
			priority, auto_transfer_amount, auto_transfer_percent, purchase_notes, created_at, updated_at
		FROM savings_goals
		WHERE id = $1
	`

	var g goal.Goal

	var statusStr string

	var autoAmount, autoPercent decimal.NullDecimal

	err := u.tx.QueryRowContext(ctx, query, u.goalID).Scan(
		&g.ID, &g.OwnerChildID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &statusStr,
		&g.Priority, &autoAmount, &autoPercent, &g.PurchaseNotes, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
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

func (u *uow) DebitBalance(ctx context.Context, childID uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE child_id = $1 AND balance >= $2
	`

	res, err := u.tx.ExecContext(ctx, query, childID, amount)
	if err != nil {
		return fmt.Errorf("debiting balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debiting balance: %w", err)
	}

	if affected == 0 {
		var exists bool
		if err := u.tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE child_id = $1)`, childID).Scan(&exists); err != nil {
			return fmt.Errorf("checking account: %w", err)
		}

		if !exists {
			return fmt.Errorf("account for child %s: %w", childID, goal.ErrNotFound)
		}

		return fmt.Errorf("%w: main balance below %s", goal.ErrInsufficientFunds, amount)
	}

	return nil
}

func (u *uow) CreditBalance(ctx context.Context, childID uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE child_id = $1
	`

	res, err := u.tx.ExecContext(ctx, query, childID, amount)
	if err != nil {
		return fmt.Errorf("crediting balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("crediting balance: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("account for child %s: %w", childID, goal.ErrNotFound)
	}

	return nil
}

func (u *uow) ApplyDelta(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $2, updated_at = NOW()
		WHERE id = $1 AND current_amount + $2 >= 0
		RETURNING current_amount
	`

	var current decimal.Decimal

	err := u.tx.QueryRowContext(ctx, query, u.goalID, delta).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, fmt.Errorf("%w: delta %s would make goal balance negative", goal.ErrInsufficientFunds, delta)
		}

		return decimal.Zero, fmt.Errorf("applying delta: %w", err)
	}

	return current, nil
}

func (u *uow) InsertContribution(ctx context.Context, c *goal.Contribution) error {
	query := `
		INSERT INTO savings_contributions (goal_id, amount, type, description, goal_balance_after, source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := u.tx.QueryRowContext(ctx, query,
		c.GoalID,
		c.Amount,
		c.Type,
		c.Description,
		c.GoalBalanceAfter,
		c.SourceID,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting contribution: %w", err)
	}

	return nil
}

func (u *uow) SetStatus(ctx context.Context, status goal.Status) error {
	query := `
		UPDATE savings_goals
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := u.tx.ExecContext(ctx, query, u.goalID, status); err != nil {
		return fmt.Errorf("setting goal status: %w", err)
	}

	return nil
}

func (u *uow) MarkPurchased(ctx context.Context, notes string) error {
	query := `
		UPDATE savings_goals
		SET status = $2, purchase_notes = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := u.tx.ExecContext(ctx, query, u.goalID, goal.StatusPurchased, notes); err != nil {
		return fmt.Errorf("marking goal purchased: %w", err)
	}

	return nil
}

// ActiveRule returns nil when the goal has no active rule; expiry is the
// evaluator's concern.
func (u *uow) ActiveRule(ctx context.Context) (*matching.Rule, error) {
	query := `
		SELECT id, goal_id, type, match_ratio, max_match_amount, total_matched_amount, is_active, expires_at, created_at, updated_at
		FROM matching_rules
		WHERE goal_id = $1 AND is_active = TRUE
	`

	var rule matching.Rule

	var typeStr string

	var maxMatch decimal.NullDecimal

	err := u.tx.QueryRowContext(ctx, query, u.goalID).Scan(
		&rule.ID, &rule.GoalID, &typeStr, &rule.MatchRatio, &maxMatch,
		&rule.TotalMatchedAmount, &rule.IsActive, &rule.ExpiresAt, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting matching rule: %w", err)
	}

	rule.Type = matching.RuleType(typeStr)

	if maxMatch.Valid {
		rule.MaxMatchAmount = &maxMatch.Decimal
	}

	return &rule, nil
}

func (u *uow) AddMatched(ctx context.Context, ruleID uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE matching_rules
		SET total_matched_amount = total_matched_amount + $2, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := u.tx.ExecContext(ctx, query, ruleID, amount); err != nil {
		return fmt.Errorf("adding matched amount: %w", err)
	}

	return nil
}

func (u *uow) Milestones(ctx context.Context) ([]*goal.Milestone, error) {
	query := `
		SELECT id, goal_id, percent_complete, target_amount, bonus_amount, is_achieved, achieved_at
		FROM goal_milestones
		WHERE goal_id = $1
		ORDER BY percent_complete ASC
	`

	rows, err := u.tx.QueryContext(ctx, query, u.goalID)
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

func (u *uow) AchieveMilestone(ctx context.Context, id uuid.UUID, achievedAt time.Time) error {
	// The is_achieved guard keeps re-evaluation a no-op.
	query := `
		UPDATE goal_milestones
		SET is_achieved = TRUE, achieved_at = $2
		WHERE id = $1 AND is_achieved = FALSE
	`

	if _, err := u.tx.ExecContext(ctx, query, id, achievedAt); err != nil {
		return fmt.Errorf("achieving milestone: %w", err)
	}

	return nil
}

// ActiveChallenge returns nil when the goal has no active challenge.
func (u *uow) ActiveChallenge(ctx context.Context) (*challenge.Challenge, error) {
	query := `
		SELECT id, goal_id, target_amount, start_date, end_date, bonus_amount, status, completed_at, created_at
		FROM goal_challenges
		WHERE goal_id = $1 AND status = 'active'
	`

	var c challenge.Challenge

	var statusStr string

	err := u.tx.QueryRowContext(ctx, query, u.goalID).Scan(
		&c.ID, &c.GoalID, &c.TargetAmount, &c.StartDate, &c.EndDate,
		&c.BonusAmount, &statusStr, &c.CompletedAt, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting active challenge: %w", err)
	}

	c.Status = challenge.Status(statusStr)

	return &c, nil
}

func (u *uow) CompleteChallenge(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	query := `
		UPDATE goal_challenges
		SET status = 'completed', completed_at = $2
		WHERE id = $1 AND status = 'active'
	`

	if _, err := u.tx.ExecContext(ctx, query, id, completedAt); err != nil {
		return fmt.Errorf("completing challenge: %w", err)
	}

	return nil
}

func (u *uow) CancelChallenge(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE goal_challenges
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'active'
	`

	if _, err := u.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("cancelling challenge: %w", err)
	}

	return nil
}
