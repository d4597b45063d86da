package repository

import (
	"strings"
	"testing"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func dollars(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, args := buildSearchQuery(model.PropertySearch{}, 0)

	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "HAVING")
	assert.Contains(t, query, "LEFT JOIN property_reviews ON property_reviews.property_id = properties.id")
	assert.Contains(t, query, "GROUP BY properties.id")
	assert.True(t, strings.HasSuffix(query, "ORDER BY properties.cost_per_night, properties.id LIMIT $1"))
	assert.Equal(t, []any{model.DefaultLimit}, args)
}

func TestBuildSearchQueryAllFilters(t *testing.T) {
	query, args := buildSearchQuery(model.PropertySearch{
		City:                 ptr("Vancouver"),
		OwnerID:              ptr(int64(7)),
		MinimumPricePerNight: dollars(50),
		MaximumPricePerNight: dollars(150),
		MinimumRating:        ptr(4.0),
	}, 5)

	assert.Contains(t, query, "WHERE properties.city ILIKE '%' || $1 || '%'"+
		" AND properties.owner_id = $2"+
		" AND properties.cost_per_night >= $3"+
		" AND properties.cost_per_night <= $4"+
		" GROUP BY properties.id"+
		" HAVING avg(property_reviews.rating) >= $5")
	assert.True(t, strings.HasSuffix(query, "LIMIT $6"))
	assert.Equal(t, []any{"Vancouver", int64(7), int64(5000), int64(15000), 4.0, 5}, args)
}

// Each filter must work on its own, without the city filter present.
func TestBuildSearchQueryFiltersAreIndependent(t *testing.T) {
	cases := []struct {
		name   string
		filter model.PropertySearch
		clause string
		args   []any
	}{
		{
			name:   "minimum price only",
			filter: model.PropertySearch{MinimumPricePerNight: dollars(50)},
			clause: "WHERE properties.cost_per_night >= $1 GROUP BY",
			args:   []any{int64(5000), model.DefaultLimit},
		},
		{
			name:   "maximum price only",
			filter: model.PropertySearch{MaximumPricePerNight: dollars(150)},
			clause: "WHERE properties.cost_per_night <= $1 GROUP BY",
			args:   []any{int64(15000), model.DefaultLimit},
		},
		{
			name:   "price range",
			filter: model.PropertySearch{MinimumPricePerNight: dollars(50), MaximumPricePerNight: dollars(150)},
			clause: "WHERE properties.cost_per_night >= $1 AND properties.cost_per_night <= $2 GROUP BY",
			args:   []any{int64(5000), int64(15000), model.DefaultLimit},
		},
		{
			name:   "rating only",
			filter: model.PropertySearch{MinimumRating: ptr(4.0)},
			clause: "GROUP BY properties.id HAVING avg(property_reviews.rating) >= $1 ORDER BY",
			args:   []any{4.0, model.DefaultLimit},
		},
		{
			name:   "owner only",
			filter: model.PropertySearch{OwnerID: ptr(int64(3))},
			clause: "WHERE properties.owner_id = $1 GROUP BY",
			args:   []any{int64(3), model.DefaultLimit},
		},
		{
			name:   "city and rating",
			filter: model.PropertySearch{City: ptr("ver"), MinimumRating: ptr(3.5)},
			clause: "WHERE properties.city ILIKE '%' || $1 || '%' GROUP BY properties.id HAVING avg(property_reviews.rating) >= $2",
			args:   []any{"ver", 3.5, model.DefaultLimit},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := buildSearchQuery(tc.filter, 0)
			assert.Contains(t, query, tc.clause)
			assert.Equal(t, tc.args, args)
			assert.True(t, strings.HasSuffix(query, "LIMIT $"+string(rune('0'+len(args)))))
		})
	}
}

func TestBuildSearchQueryNeverInterpolatesValues(t *testing.T) {
	evil := "x'; DROP TABLE users; --"
	query, args := buildSearchQuery(model.PropertySearch{City: &evil}, 3)

	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, evil, args[0])
}

func TestBuildSearchQueryEscapesLikeWildcards(t *testing.T) {
	_, args := buildSearchQuery(model.PropertySearch{City: ptr(`100%_off\`)}, 0)
	assert.Equal(t, `100\%\_off\\`, args[0])
}

func TestBuildSearchQueryRoundsFractionalPrices(t *testing.T) {
	lo := decimal.RequireFromString("49.995")
	_, args := buildSearchQuery(model.PropertySearch{MinimumPricePerNight: &lo}, 0)
	assert.Equal(t, int64(5000), args[0])
}
