package matching

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a goal has no matching rule.
	ErrNotFound = errors.New("matching rule not found")
	// ErrInvalidRule wraps validation failures on rule parameters.
	ErrInvalidRule = errors.New("invalid matching rule")
)

// RuleType selects how the match amount is derived from a deposit.
type RuleType string

const (
	// RatioMatch multiplies the deposit by MatchRatio directly
	// (ratio 0.5 means one dollar matched for every two deposited).
	RatioMatch RuleType = "ratio_match"
	// PercentageMatch interprets MatchRatio as a percentage of the deposit.
	PercentageMatch RuleType = "percentage_match"
)

// Rule is the at-most-one active parent matching rule of a goal.
// TotalMatchedAmount only grows, and only inside a contribution unit of work
// that also inserts the corresponding parent-match ledger entry.
type Rule struct {
	ID                 uuid.UUID
	GoalID             uuid.UUID
	Type               RuleType
	MatchRatio         decimal.Decimal
	MaxMatchAmount     *decimal.Decimal // lifetime cap, nil for uncapped
	TotalMatchedAmount decimal.Decimal
	IsActive           bool
	ExpiresAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// Validate checks the rule parameters a parent may set.
func (r *Rule) Validate() error {
	switch r.Type {
	case RatioMatch, PercentageMatch:
	default:
		return errors.Join(ErrInvalidRule, errors.New("unknown rule type"))
	}

	if !r.MatchRatio.IsPositive() {
		return errors.Join(ErrInvalidRule, errors.New("match ratio must be positive"))
	}

	if r.MaxMatchAmount != nil && !r.MaxMatchAmount.IsPositive() {
		return errors.Join(ErrInvalidRule, errors.New("max match amount must be positive"))
	}

	return nil
}

// Expired reports whether the rule's expiry has passed at the given instant.
func (r *Rule) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
