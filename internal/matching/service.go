package matching

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	UpsertRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, goalID uuid.UUID) (*Rule, error)
	DeactivateRule(ctx context.Context, goalID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type UpsertParams struct {
	GoalID         uuid.UUID
	Type           RuleType
	MatchRatio     decimal.Decimal
	MaxMatchAmount *decimal.Decimal
	ExpiresAt      *time.Time
}

// Upsert creates or replaces the goal's matching rule. Replacing keeps the
// lifetime matched total, so a cap cannot be reset by re-creating the rule.
func (s *Service) Upsert(ctx context.Context, params UpsertParams) (*Rule, error) {
	rule := &Rule{
		GoalID:         params.GoalID,
		Type:           params.Type,
		MatchRatio:     params.MatchRatio,
		MaxMatchAmount: params.MaxMatchAmount,
		IsActive:       true,
		ExpiresAt:      params.ExpiresAt,
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertRule(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (s *Service) Get(ctx context.Context, goalID uuid.UUID) (*Rule, error) {
	return s.repo.GetRule(ctx, goalID)
}

// Deactivate turns the rule off without losing its matched total.
func (s *Service) Deactivate(ctx context.Context, goalID uuid.UUID) error {
	return s.repo.DeactivateRule(ctx, goalID)
}
