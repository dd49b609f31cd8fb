package matching

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/money"
)

// ComputeMatch returns the parent-match amount owed for a deposit, already
// rounded to the minor unit and clamped to the rule's remaining lifetime cap.
// A zero result means no parent-match entry is created.
func ComputeMatch(rule *Rule, deposit decimal.Decimal, now time.Time) decimal.Decimal {
	if rule == nil || !rule.IsActive || rule.Expired(now) {
		return decimal.Zero
	}

	var match decimal.Decimal

	switch rule.Type {
	case RatioMatch:
		match = deposit.Mul(rule.MatchRatio)
	case PercentageMatch:
		match = deposit.Mul(rule.MatchRatio).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}

	// Round after the computation, not before.
	match = money.RoundMinor(match)

	if rule.MaxMatchAmount != nil {
		remaining := rule.MaxMatchAmount.Sub(rule.TotalMatchedAmount)
		if match.GreaterThan(remaining) {
			match = remaining
		}
	}

	if match.IsNegative() {
		return decimal.Zero
	}

	return match
}
