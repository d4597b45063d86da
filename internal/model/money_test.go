package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentsFromDollars(t *testing.T) {
	tests := []struct {
		dollars string
		cents   int64
	}{
		{"0", 0},
		{"50", 5000},
		{"129.99", 12999},
		{"49.995", 5000},
		{"49.994", 4999},
		{"-49.995", -5000},
		{"-0.004", 0},
	}

	for _, tt := range tests {
		t.Run(tt.dollars, func(t *testing.T) {
			assert.Equal(t, tt.cents, CentsFromDollars(decimal.RequireFromString(tt.dollars)))
		})
	}
}

func TestDollarsFromCents(t *testing.T) {
	assert.Equal(t, "930.61", DollarsFromCents(93061).StringFixed(2))
	assert.Equal(t, "0.05", DollarsFromCents(5).StringFixed(2))
	assert.Equal(t, "-12.00", DollarsFromCents(-1200).StringFixed(2))
}

func TestCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 4999, 15000, 93061, -1, -15025} {
		assert.Equal(t, cents, CentsFromDollars(DollarsFromCents(cents)), cents)
	}
}

func TestCostPerNightDollars(t *testing.T) {
	p := Property{CostPerNight: 12999}
	assert.True(t, p.CostPerNightDollars().Equal(decimal.RequireFromString("129.99")))
}
