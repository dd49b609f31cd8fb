package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/goal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=challenge
type Repository interface {
	CreateChallenge(ctx context.Context, c *Challenge) error
	GetChallenge(ctx context.Context, id uuid.UUID) (*Challenge, error)
	ActiveChallenge(ctx context.Context, goalID uuid.UUID) (*Challenge, error)
	CancelChallenge(ctx context.Context, id uuid.UUID) error
	FailExpired(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	repo  Repository
	goals *goal.Service
}

func NewService(repo Repository, goals *goal.Service) *Service {
	return &Service{repo: repo, goals: goals}
}

type CreateParams struct {
	GoalID       uuid.UUID
	TargetAmount decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	BonusAmount  decimal.Decimal
}

// Create starts a challenge on an active goal. The store enforces the
// one-active-challenge-per-goal rule.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Challenge, error) {
	if !params.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", goal.ErrValidation)
	}

	if params.BonusAmount.IsNegative() {
		return nil, fmt.Errorf("%w: bonus amount cannot be negative", goal.ErrValidation)
	}

	if !params.EndDate.After(params.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", goal.ErrValidation)
	}

	g, err := s.goals.Get(ctx, params.GoalID)
	if err != nil {
		return nil, err
	}

	if g.Status != goal.StatusActive {
		return nil, fmt.Errorf("%w: cannot challenge a %s goal", goal.ErrNotActive, g.Status)
	}

	c := &Challenge{
		GoalID:       params.GoalID,
		TargetAmount: params.TargetAmount,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		BonusAmount:  params.BonusAmount,
		Status:       StatusActive,
	}

	if err := s.repo.CreateChallenge(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Challenge, error) {
	return s.repo.GetChallenge(ctx, id)
}

// Active returns the goal's active challenge, or ErrNotFound.
func (s *Service) Active(ctx context.Context, goalID uuid.UUID) (*Challenge, error) {
	return s.repo.ActiveChallenge(ctx, goalID)
}

// Cancel is the explicit parent action; no funds move.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.repo.CancelChallenge(ctx, id)
}

// SweepExpired fails every active challenge whose end date has passed.
// It is triggered periodically from outside a contribution; no funds move
// on failure. Returns the number of challenges failed.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.FailExpired(ctx, now)
}
