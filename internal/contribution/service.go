package contribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/challenge"
	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/matching"
	"github.com/sproutbank/sprout/internal/money"
)

// ErrLockTimeout is returned when the per-goal lock could not be acquired in
// time. The caller should retry.
var ErrLockTimeout = errors.New("timed out waiting for goal lock")

//go:generate mockgen -source=service.go -destination=orchestrator_mock.go -package=contribution
type Repository interface {
	// Begin opens a unit of work that holds the goal's row lock until Commit
	// or Rollback. All mutations to the goal, its milestones, matching rule,
	// challenge and the owner's main balance go through the returned Tx.
	Begin(ctx context.Context, goalID uuid.UUID) (Tx, error)
}

// Tx is a per-goal unit of work. Every method runs inside the same database
// transaction; nothing is visible to other workers before Commit.
type Tx interface {
	Goal(ctx context.Context) (*goal.Goal, error)

	DebitBalance(ctx context.Context, childID uuid.UUID, amount decimal.Decimal) error
	CreditBalance(ctx context.Context, childID uuid.UUID, amount decimal.Decimal) error

	// ApplyDelta is the single writer of the goal's current amount. It
	// rejects deltas that would make the amount negative and returns the new
	// amount.
	ApplyDelta(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error)
	InsertContribution(ctx context.Context, c *goal.Contribution) error
	SetStatus(ctx context.Context, status goal.Status) error
	MarkPurchased(ctx context.Context, notes string) error

	ActiveRule(ctx context.Context) (*matching.Rule, error)
	AddMatched(ctx context.Context, ruleID uuid.UUID, amount decimal.Decimal) error

	Milestones(ctx context.Context) ([]*goal.Milestone, error)
	AchieveMilestone(ctx context.Context, id uuid.UUID, achievedAt time.Time) error

	ActiveChallenge(ctx context.Context) (*challenge.Challenge, error)
	CompleteChallenge(ctx context.Context, id uuid.UUID, completedAt time.Time) error
	CancelChallenge(ctx context.Context, id uuid.UUID) error

	Commit() error
	Rollback() error
}

// Service is the transactional entry point for every operation that moves
// money into or out of a goal.
type Service struct {
	repo      Repository
	publisher Publisher
	timeout   time.Duration
}

func NewService(repo Repository, publisher Publisher, timeout time.Duration) *Service {
	return &Service{repo: repo, publisher: publisher, timeout: timeout}
}

// Contribute moves amount from the child's main balance into the goal,
// applies matching, milestones and challenge resolution, and publishes a
// progress event after commit.
func (s *Service) Contribute(ctx context.Context, goalID uuid.UUID, amount decimal.Decimal, description string) (*ProgressEvent, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", goal.ErrValidation)
	}

	amount = money.RoundMinor(amount)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.repo.Begin(ctx, goalID)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, err := tx.Goal(ctx)
	if err != nil {
		return nil, err
	}

	if g.Status != goal.StatusActive {
		return nil, fmt.Errorf("%w: goal is %s", goal.ErrNotActive, g.Status)
	}

	if err := tx.DebitBalance(ctx, g.OwnerChildID, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	current, err := s.record(ctx, tx, &goal.Contribution{
		GoalID:      goalID,
		Amount:      amount,
		Type:        goal.TypeChildDeposit,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	rule, err := tx.ActiveRule(ctx)
	if err != nil {
		return nil, err
	}

	var matchAdded *decimal.Decimal

	if match := matching.ComputeMatch(rule, amount, now); match.IsPositive() {
		current, err = s.record(ctx, tx, &goal.Contribution{
			GoalID:   goalID,
			Amount:   match,
			Type:     goal.TypeParentMatch,
			SourceID: &rule.ID,
		})
		if err != nil {
			return nil, err
		}

		if err := tx.AddMatched(ctx, rule.ID, match); err != nil {
			return nil, err
		}

		matchAdded = &match
	}

	milestones, err := tx.Milestones(ctx)
	if err != nil {
		return nil, err
	}

	var reached *int

	current, reached, err = s.climbLadder(ctx, tx, g, milestones, current, now, reached)
	if err != nil {
		return nil, err
	}

	ch, err := tx.ActiveChallenge(ctx)
	if err != nil {
		return nil, err
	}

	challengeCompleted := false

	if ch != nil && ch.ResolvableAt(current, now) {
		if err := tx.CompleteChallenge(ctx, ch.ID, now); err != nil {
			return nil, err
		}

		challengeCompleted = true

		if ch.BonusAmount.IsPositive() {
			current, err = s.record(ctx, tx, &goal.Contribution{
				GoalID:   goalID,
				Amount:   money.RoundMinor(ch.BonusAmount),
				Type:     goal.TypeChallengeBonus,
				SourceID: &ch.ID,
			})
			if err != nil {
				return nil, err
			}

			// The bonus itself can cross the remaining milestones.
			current, reached, err = s.climbLadder(ctx, tx, g, milestones, current, now, reached)
			if err != nil {
				return nil, err
			}
		}
	}

	completed := current.GreaterThanOrEqual(g.TargetAmount)
	if completed {
		if err := tx.SetStatus(ctx, goal.StatusCompleted); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing contribution: %w", err)
	}

	event := ProgressEvent{
		GoalID:             goalID,
		GoalName:           g.Name,
		ChildID:            g.OwnerChildID,
		NewAmount:          current,
		TargetAmount:       g.TargetAmount,
		Percentage:         money.RoundMinor(money.Percent(current, g.TargetAmount)),
		MilestoneReached:   reached,
		IsCompleted:        completed,
		MatchAmountAdded:   matchAdded,
		ChallengeCompleted: challengeCompleted,
		OccurredAt:         now,
	}

	s.publish(event)

	return &event, nil
}

// Withdraw moves amount from the goal back to the child's main balance.
// Matches already granted are not clawed back.
func (s *Service) Withdraw(ctx context.Context, goalID uuid.UUID, amount decimal.Decimal, reason string) (*goal.Contribution, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", goal.ErrValidation)
	}

	amount = money.RoundMinor(amount)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.repo.Begin(ctx, goalID)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, err := tx.Goal(ctx)
	if err != nil {
		return nil, err
	}

	if g.Status != goal.StatusActive && g.Status != goal.StatusPaused {
		return nil, fmt.Errorf("%w: cannot withdraw from a %s goal", goal.ErrNotActive, g.Status)
	}

	if g.CurrentAmount.LessThan(amount) {
		return nil, fmt.Errorf("%w: goal balance %s below %s", goal.ErrInsufficientFunds, g.CurrentAmount, amount)
	}

	c := &goal.Contribution{
		GoalID:      goalID,
		Amount:      amount.Neg(),
		Type:        goal.TypeWithdrawal,
		Description: reason,
	}

	if _, err := s.record(ctx, tx, c); err != nil {
		return nil, err
	}

	if err := tx.CreditBalance(ctx, g.OwnerChildID, amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing withdrawal: %w", err)
	}

	return c, nil
}

// MarkPurchased closes a fully funded goal. The funds stay where previous
// contributions put them.
func (s *Service) MarkPurchased(ctx context.Context, goalID uuid.UUID, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.repo.Begin(ctx, goalID)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	g, err := tx.Goal(ctx)
	if err != nil {
		return err
	}

	if g.Status != goal.StatusCompleted {
		return fmt.Errorf("%w: %s to %s", goal.ErrInvalidTransition, g.Status, goal.StatusPurchased)
	}

	if err := tx.MarkPurchased(ctx, notes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing purchase: %w", err)
	}

	return nil
}

// Cancel terminates the goal, reversing any remaining funds to the owner's
// main balance as a single compensating withdrawal. An active challenge on
// the goal is cancelled with it.
func (s *Service) Cancel(ctx context.Context, goalID uuid.UUID, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.repo.Begin(ctx, goalID)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	g, err := tx.Goal(ctx)
	if err != nil {
		return err
	}

	if !g.Status.CanTransitionTo(goal.StatusCancelled) {
		return fmt.Errorf("%w: %s to %s", goal.ErrInvalidTransition, g.Status, goal.StatusCancelled)
	}

	if g.CurrentAmount.IsPositive() {
		if reason == "" {
			reason = "goal cancelled"
		}

		if _, err := s.record(ctx, tx, &goal.Contribution{
			GoalID:      goalID,
			Amount:      g.CurrentAmount.Neg(),
			Type:        goal.TypeWithdrawal,
			Description: reason,
		}); err != nil {
			return err
		}

		if err := tx.CreditBalance(ctx, g.OwnerChildID, g.CurrentAmount); err != nil {
			return err
		}
	}

	ch, err := tx.ActiveChallenge(ctx)
	if err != nil {
		return err
	}

	if ch != nil {
		if err := tx.CancelChallenge(ctx, ch.ID); err != nil {
			return err
		}
	}

	if err := tx.SetStatus(ctx, goal.StatusCancelled); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cancellation: %w", err)
	}

	return nil
}

// record applies the contribution's delta and inserts the ledger entry with
// the balance snapshot taken from the same delta, keeping the snapshot equal
// to the running sum by construction.
func (s *Service) record(ctx context.Context, tx Tx, c *goal.Contribution) (decimal.Decimal, error) {
	current, err := tx.ApplyDelta(ctx, c.Amount)
	if err != nil {
		return decimal.Zero, err
	}

	c.GoalBalanceAfter = current

	if err := tx.InsertContribution(ctx, c); err != nil {
		return decimal.Zero, err
	}

	return current, nil
}

// climbLadder marks every not-yet-achieved milestone the current amount now
// covers, in ascending order, paying bonuses as it goes. Already-achieved
// milestones are never touched again.
func (s *Service) climbLadder(ctx context.Context, tx Tx, g *goal.Goal, milestones []*goal.Milestone, current decimal.Decimal, now time.Time, reached *int) (decimal.Decimal, *int, error) {
	for _, m := range milestones {
		if m.IsAchieved {
			continue
		}

		pct := money.Percent(current, g.TargetAmount)
		if pct.LessThan(decimal.NewFromInt(int64(m.PercentComplete))) {
			continue
		}

		if err := tx.AchieveMilestone(ctx, m.ID, now); err != nil {
			return decimal.Zero, nil, err
		}

		m.IsAchieved = true

		if m.BonusAmount.IsPositive() {
			var err error

			current, err = s.record(ctx, tx, &goal.Contribution{
				GoalID:   g.ID,
				Amount:   m.BonusAmount,
				Type:     goal.TypeMilestoneBonus,
				SourceID: &m.ID,
			})
			if err != nil {
				return decimal.Zero, nil, err
			}
		}

		if reached == nil || *reached < m.PercentComplete {
			p := m.PercentComplete
			reached = &p
		}
	}

	return current, reached, nil
}

func (s *Service) publish(event ProgressEvent) {
	if s.publisher == nil {
		return
	}

	// Publishing is outside the unit of work and must not inherit the
	// caller's cancellation: the financial fact is already durable.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.publisher.PublishProgress(ctx, event); err != nil {
		slog.Error("failed to publish progress event", "goal_id", event.GoalID, "error", err)
	}
}
