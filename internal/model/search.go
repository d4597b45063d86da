package model

import "github.com/shopspring/decimal"

// DefaultLimit caps list results when the caller does not.
const DefaultLimit = 10

// PropertySearch holds the optional search filters. A nil field is not
// applied. Prices are whole currency units; they are converted to cents
// before binding.
type PropertySearch struct {
	City                 *string          `json:"city,omitempty"`
	OwnerID              *int64           `json:"owner_id,omitempty"`
	MinimumPricePerNight *decimal.Decimal `json:"minimum_price_per_night,omitempty"`
	MaximumPricePerNight *decimal.Decimal `json:"maximum_price_per_night,omitempty"`
	MinimumRating        *float64         `json:"minimum_rating,omitempty"`
}

// Limit resolves a caller-supplied limit. Zero or negative means
// DefaultLimit.
func Limit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return n
}
