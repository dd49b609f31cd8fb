package matching_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sproutbank/sprout/internal/matching"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeMatch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	cap5 := d("5")
	cap100 := d("100")

	type testCase struct {
		name    string
		rule    *matching.Rule
		deposit string
		want    string
	}

	tests := []testCase{
		{
			name:    "NoRule",
			rule:    nil,
			deposit: "20",
			want:    "0",
		},
		{
			name: "RatioHalf",
			rule: &matching.Rule{
				Type:       matching.RatioMatch,
				MatchRatio: d("0.5"),
				IsActive:   true,
			},
			deposit: "20",
			want:    "10",
		},
		{
			name: "PercentageTwentyFive",
			rule: &matching.Rule{
				Type:       matching.PercentageMatch,
				MatchRatio: d("25"),
				IsActive:   true,
			},
			deposit: "20",
			want:    "5",
		},
		{
			name: "RoundsHalfUpAfterComputation",
			rule: &matching.Rule{
				Type:       matching.RatioMatch,
				MatchRatio: d("0.5"),
				IsActive:   true,
			},
			deposit: "0.05",
			want:    "0.03",
		},
		{
			name: "ClampedToRemainingCap",
			rule: &matching.Rule{
				Type:               matching.RatioMatch,
				MatchRatio:         d("1"),
				MaxMatchAmount:     &cap5,
				TotalMatchedAmount: d("4"),
				IsActive:           true,
			},
			deposit: "10",
			want:    "1",
		},
		{
			name: "CapExhausted",
			rule: &matching.Rule{
				Type:               matching.RatioMatch,
				MatchRatio:         d("1"),
				MaxMatchAmount:     &cap5,
				TotalMatchedAmount: d("5"),
				IsActive:           true,
			},
			deposit: "10",
			want:    "0",
		},
		{
			name: "Inactive",
			rule: &matching.Rule{
				Type:       matching.RatioMatch,
				MatchRatio: d("1"),
				IsActive:   false,
			},
			deposit: "10",
			want:    "0",
		},
		{
			name: "Expired",
			rule: &matching.Rule{
				Type:       matching.RatioMatch,
				MatchRatio: d("1"),
				IsActive:   true,
				ExpiresAt:  &past,
			},
			deposit: "10",
			want:    "0",
		},
		{
			name: "NotYetExpired",
			rule: &matching.Rule{
				Type:           matching.RatioMatch,
				MatchRatio:     d("1"),
				MaxMatchAmount: &cap100,
				IsActive:       true,
				ExpiresAt:      &future,
			},
			deposit: "10",
			want:    "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.ComputeMatch(tt.rule, d(tt.deposit), now)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRuleValidate(t *testing.T) {
	negative := d("-1")

	tests := []struct {
		name    string
		rule    matching.Rule
		wantErr bool
	}{
		{name: "ValidRatio", rule: matching.Rule{Type: matching.RatioMatch, MatchRatio: d("0.5")}},
		{name: "ValidPercentage", rule: matching.Rule{Type: matching.PercentageMatch, MatchRatio: d("50")}},
		{name: "UnknownType", rule: matching.Rule{Type: "bogus", MatchRatio: d("1")}, wantErr: true},
		{name: "ZeroRatio", rule: matching.Rule{Type: matching.RatioMatch, MatchRatio: d("0")}, wantErr: true},
		{name: "NegativeCap", rule: matching.Rule{Type: matching.RatioMatch, MatchRatio: d("1"), MaxMatchAmount: &negative}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, matching.ErrInvalidRule)
				return
			}

			assert.NoError(t, err)
		})
	}
}
