package contribution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProgressEvent is published after a contribution commits. It is the sole
// contract with the notification and achievement collaborators; delivery is
// at-least-once and consumers are expected to be idempotent on it.
type ProgressEvent struct {
	GoalID             uuid.UUID        `json:"goal_id"`
	GoalName           string           `json:"goal_name"`
	ChildID            uuid.UUID        `json:"child_id"`
	NewAmount          decimal.Decimal  `json:"new_amount"`
	TargetAmount       decimal.Decimal  `json:"target_amount"`
	Percentage         decimal.Decimal  `json:"percentage"`
	MilestoneReached   *int             `json:"milestone_reached,omitempty"`
	IsCompleted        bool             `json:"is_completed"`
	MatchAmountAdded   *decimal.Decimal `json:"match_amount_added,omitempty"`
	ChallengeCompleted bool             `json:"challenge_completed"`
	OccurredAt         time.Time        `json:"occurred_at"`
}

// Publisher delivers progress events to external collaborators. Publishing
// happens outside the unit of work; failures are logged, never rolled back.
//
//go:generate mockgen -source=event.go -destination=event_mock.go -package=contribution
type Publisher interface {
	PublishProgress(ctx context.Context, event ProgressEvent) error
}
