// Package money holds the numeric conventions shared by every component that
// touches an amount: exact decimals, rounded half-up to the currency's minor
// unit after each computation.
package money

import "github.com/shopspring/decimal"

// minorUnits is the number of decimal places of the ledger currency.
const minorUnits = 2

// RoundMinor rounds an amount to the currency's minor unit using
// round-half-up. All derived amounts (matches, bonuses) pass through here
// before they are inserted into the ledger.
func RoundMinor(d decimal.Decimal) decimal.Decimal {
	return d.Round(minorUnits)
}

// Percent returns current/target expressed as a percentage. Target is
// guaranteed positive by the goal invariants.
func Percent(current, target decimal.Decimal) decimal.Decimal {
	return current.Div(target).Mul(decimal.NewFromInt(100))
}
