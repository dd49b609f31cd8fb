package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a goal does not exist or is not visible.
	ErrNotFound = errors.New("goal not found")
	// ErrNotActive is returned when an operation requires a goal status it
	// does not have (e.g. contributing to a paused goal).
	ErrNotActive = errors.New("goal not active")
	// ErrInvalidTransition is returned for status changes the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInsufficientFunds is returned when the main balance cannot cover a
	// debit, or the goal balance cannot cover a withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrValidation wraps precondition failures on caller-supplied input.
	ErrValidation = errors.New("validation failed")
)

// Status represents the lifecycle state of a savings goal.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusPurchased Status = "purchased"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusPurchased || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Any non-terminal status may be cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}

	if next == StatusCancelled {
		return true
	}

	switch s {
	case StatusActive:
		return next == StatusPaused || next == StatusCompleted
	case StatusPaused:
		return next == StatusActive
	case StatusCompleted:
		return next == StatusPurchased
	}

	return false
}

// ContributionType classifies ledger entries attached to a goal.
type ContributionType string

const (
	TypeChildDeposit   ContributionType = "child_deposit"
	TypeAutoTransfer   ContributionType = "auto_transfer"
	TypeParentMatch    ContributionType = "parent_match"
	TypeParentGift     ContributionType = "parent_gift"
	TypeChallengeBonus ContributionType = "challenge_bonus"
	TypeMilestoneBonus ContributionType = "milestone_bonus"
	TypeWithdrawal     ContributionType = "withdrawal"
	TypeExternalGift   ContributionType = "external_gift"
)

// Goal represents a named savings target owned by one child. CurrentAmount is
// a materialized view over the goal's contributions and is written only
// through the contribution unit of work.
type Goal struct {
	ID                  uuid.UUID
	OwnerChildID        uuid.UUID
	Name                string
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	Status              Status
	Priority            int
	AutoTransferAmount  *decimal.Decimal // fixed amount moved on allowance credit, applied externally
	AutoTransferPercent *decimal.Decimal
	PurchaseNotes       *string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// Contribution is an immutable, append-only ledger entry. Amount is signed:
// positive for deposits, matches and bonuses, negative for withdrawals.
// Corrections are new offsetting entries, never updates.
type Contribution struct {
	ID               uuid.UUID
	GoalID           uuid.UUID
	Amount           decimal.Decimal
	Type             ContributionType
	Description      string
	GoalBalanceAfter decimal.Decimal
	SourceID         *uuid.UUID // matching rule, milestone or challenge that produced this entry
	CreatedAt        time.Time
}

// Milestone is one step of a goal's fixed percentage ladder, created with the
// goal. IsAchieved flips false to true exactly once.
type Milestone struct {
	ID              uuid.UUID
	GoalID          uuid.UUID
	PercentComplete int
	TargetAmount    decimal.Decimal
	BonusAmount     decimal.Decimal
	IsAchieved      bool
	AchievedAt      *time.Time
}
