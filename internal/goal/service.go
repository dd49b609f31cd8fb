package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/money"
)

// LadderPercents is the milestone ladder created for every goal.
var LadderPercents = []int{25, 50, 75, 100}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal, ladder []*Milestone) error
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, childID uuid.UUID) ([]*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	ListMilestones(ctx context.Context, goalID uuid.UUID) ([]*Milestone, error)
	ListContributions(ctx context.Context, goalID uuid.UUID) ([]*Contribution, error)
	Balance(ctx context.Context, childID uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerChildID        uuid.UUID
	Name                string
	TargetAmount        decimal.Decimal
	Priority            int
	AutoTransferAmount  *decimal.Decimal
	AutoTransferPercent *decimal.Decimal

	// MilestoneBonuses maps a ladder percent to an optional bonus paid when
	// that milestone is achieved.
	MilestoneBonuses map[int]decimal.Decimal
}

// Create validates the params and persists the goal together with its
// milestone ladder in one statement batch.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if !params.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", ErrValidation)
	}

	for pct := range params.MilestoneBonuses {
		if !ladderHas(pct) {
			return nil, fmt.Errorf("%w: no %d%% milestone in the ladder", ErrValidation, pct)
		}
	}

	g := &Goal{
		OwnerChildID:        params.OwnerChildID,
		Name:                params.Name,
		TargetAmount:        params.TargetAmount,
		CurrentAmount:       decimal.Zero,
		Status:              StatusActive,
		Priority:            params.Priority,
		AutoTransferAmount:  params.AutoTransferAmount,
		AutoTransferPercent: params.AutoTransferPercent,
	}

	ladder := make([]*Milestone, len(LadderPercents))
	for i, pct := range LadderPercents {
		m := &Milestone{
			PercentComplete: pct,
			TargetAmount:    money.RoundMinor(params.TargetAmount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))),
			BonusAmount:     decimal.Zero,
		}

		if bonus, ok := params.MilestoneBonuses[pct]; ok {
			m.BonusAmount = money.RoundMinor(bonus)
		}

		ladder[i] = m
	}

	if err := s.repo.CreateGoal(ctx, g, ladder); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

func (s *Service) List(ctx context.Context, childID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, childID)
}

type UpdateParams struct {
	Name                *string
	Priority            *int
	AutoTransferAmount  *decimal.Decimal
	AutoTransferPercent *decimal.Decimal
}

// Update changes non-monetary attributes. Amounts never move through here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Goal, error) {
	g, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	if g.Status.Terminal() {
		return nil, fmt.Errorf("%w: goal is %s", ErrInvalidTransition, g.Status)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}

		g.Name = *params.Name
	}

	if params.Priority != nil {
		g.Priority = *params.Priority
	}

	if params.AutoTransferAmount != nil {
		g.AutoTransferAmount = params.AutoTransferAmount
	}

	if params.AutoTransferPercent != nil {
		g.AutoTransferPercent = params.AutoTransferPercent
	}

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// Pause suspends contributions to an active goal.
func (s *Service) Pause(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusPaused)
}

// Resume reactivates a paused goal.
func (s *Service) Resume(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusActive)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next Status) error {
	g, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return err
	}

	if !g.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, g.Status, next)
	}

	return s.repo.UpdateStatus(ctx, id, next)
}

func (s *Service) Milestones(ctx context.Context, goalID uuid.UUID) ([]*Milestone, error) {
	return s.repo.ListMilestones(ctx, goalID)
}

// History returns the goal's full contribution ledger, oldest first.
func (s *Service) History(ctx context.Context, goalID uuid.UUID) ([]*Contribution, error) {
	return s.repo.ListContributions(ctx, goalID)
}

// Balance returns the child's main balance from the ledger gateway's table.
func (s *Service) Balance(ctx context.Context, childID uuid.UUID) (decimal.Decimal, error) {
	return s.repo.Balance(ctx, childID)
}

func ladderHas(pct int) bool {
	for _, p := range LadderPercents {
		if p == pct {
			return true
		}
	}

	return false
}
