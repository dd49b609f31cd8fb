package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sproutbank/sprout/internal/money"
)

func TestRoundMinor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ExactCents", in: "12.34", want: "12.34"},
		{name: "HalfRoundsUp", in: "0.125", want: "0.13"},
		{name: "BelowHalfRoundsDown", in: "0.124", want: "0.12"},
		{name: "WholeAmount", in: "7", want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decimal.RequireFromString(tt.in)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, money.RoundMinor(in).Equal(want))
		})
	}
}

func TestPercent(t *testing.T) {
	current := decimal.RequireFromString("40")
	target := decimal.RequireFromString("100")
	assert.True(t, money.Percent(current, target).Equal(decimal.RequireFromString("40")))

	current = decimal.RequireFromString("55")
	target = decimal.RequireFromString("50")
	assert.True(t, money.Percent(current, target).Equal(decimal.RequireFromString("110")))
}
