package repository

import (
	"strconv"
	"strings"

	"github.com/emmanueletti/lightbnb/internal/model"
)

// searchQuery accumulates WHERE and HAVING fragments alongside their
// bound arguments. Placeholders are numbered by bind order, so any
// combination of filters yields $1..$n without gaps.
type searchQuery struct {
	where  []string
	having []string
	args   []any
}

// bind appends v to the argument list and returns its placeholder.
func (q *searchQuery) bind(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildSearchQuery assembles the property search statement. Every filter
// is applied independently of the others.
func buildSearchQuery(f model.PropertySearch, limit int) (string, []any) {
	q := &searchQuery{}

	if f.City != nil {
		// The value is escaped so % and _ in a city name match literally.
		q.where = append(q.where, "properties.city ILIKE '%' || "+q.bind(likeEscaper.Replace(*f.City))+" || '%'")
	}
	if f.OwnerID != nil {
		q.where = append(q.where, "properties.owner_id = "+q.bind(*f.OwnerID))
	}
	if f.MinimumPricePerNight != nil {
		q.where = append(q.where, "properties.cost_per_night >= "+q.bind(model.CentsFromDollars(*f.MinimumPricePerNight)))
	}
	if f.MaximumPricePerNight != nil {
		q.where = append(q.where, "properties.cost_per_night <= "+q.bind(model.CentsFromDollars(*f.MaximumPricePerNight)))
	}
	if f.MinimumRating != nil {
		q.having = append(q.having, "avg(property_reviews.rating) >= "+q.bind(*f.MinimumRating))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(qualifiedPropertyColumns)
	b.WriteString(", avg(property_reviews.rating)::float8 AS average_rating")
	b.WriteString(" FROM properties")
	b.WriteString(" LEFT JOIN property_reviews ON property_reviews.property_id = properties.id")
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	b.WriteString(" GROUP BY properties.id")
	if len(q.having) > 0 {
		b.WriteString(" HAVING ")
		b.WriteString(strings.Join(q.having, " AND "))
	}
	b.WriteString(" ORDER BY properties.cost_per_night, properties.id")
	b.WriteString(" LIMIT ")
	b.WriteString(q.bind(model.Limit(limit)))

	return b.String(), q.args
}
