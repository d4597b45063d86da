package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CentsFromDollars converts a currency amount into integer cents,
// rounding half away from zero to the nearest cent.
func CentsFromDollars(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// DollarsFromCents converts stored cents back into a currency amount.
func DollarsFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
