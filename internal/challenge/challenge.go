package challenge

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a goal has no challenge, or the challenge
	// id is unknown.
	ErrNotFound = errors.New("challenge not found")
	// ErrActiveExists is returned when creating a challenge for a goal that
	// already has an active one.
	ErrActiveExists = errors.New("goal already has an active challenge")
	// ErrNotActive is returned when cancelling a challenge that has already
	// been resolved.
	ErrNotActive = errors.New("challenge not active")
)

// Status represents the lifecycle state of a challenge.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Challenge is a goal's single active time-bound savings target set by a
// parent. Completion is resolved inside the contribution that crosses the
// target; expiry is resolved by the periodic sweep.
type Challenge struct {
	ID           uuid.UUID
	GoalID       uuid.UUID
	TargetAmount decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	BonusAmount  decimal.Decimal
	Status       Status
	CompletedAt  *time.Time
	CreatedAt    time.Time
}

// ResolvableAt reports whether a goal balance of amount at the given instant
// completes the challenge.
func (c *Challenge) ResolvableAt(amount decimal.Decimal, now time.Time) bool {
	return c.Status == StatusActive &&
		amount.GreaterThanOrEqual(c.TargetAmount) &&
		!now.After(c.EndDate)
}
