package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// propertyColumnNames is the fixed column order shared by every
// properties SELECT, RETURNING and scan.
var propertyColumnNames = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"thumbnail_photo_url",
	"cover_photo_url",
	"cost_per_night",
	"street",
	"city",
	"province",
	"post_code",
	"country",
	"parking_spaces",
	"number_of_bathrooms",
	"number_of_bedrooms",
}

var (
	propertyColumns          = strings.Join(propertyColumnNames, ", ")
	qualifiedPropertyColumns = "properties." + strings.Join(propertyColumnNames, ", properties.")
)

// PropertyRepository searches and inserts properties.
type PropertyRepository struct {
	db DBTX
}

// NewPropertyRepository returns a PropertyRepository over db.
func NewPropertyRepository(db DBTX) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Search returns at most limit properties matching every supplied filter,
// cheapest first, each with its average review rating.
func (r *PropertyRepository) Search(ctx context.Context, f model.PropertySearch, limit int) ([]model.PropertyWithRating, error) {
	query, args := buildSearchQuery(f, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", sqlerr.Wrap(err))
	}
	defer rows.Close()

	// The limit is caller-supplied; only the default sizes the buffer.
	out := make([]model.PropertyWithRating, 0, min(model.Limit(limit), model.DefaultLimit))
	for rows.Next() {
		var p model.PropertyWithRating
		if err := rows.Scan(append(propertyScanTargets(&p.Property), &p.AverageRating)...); err != nil {
			return nil, fmt.Errorf("search properties: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search properties: %w", sqlerr.Wrap(err))
	}
	return out, nil
}

// Create inserts the fourteen property columns and returns the full row.
// A missing owner surfaces as a sqlerr.ForeignKeyViolation.
func (r *PropertyRepository) Create(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO properties (
			owner_id, title, description, thumbnail_photo_url, cover_photo_url,
			cost_per_night, street, city, province, post_code,
			country, parking_spaces, number_of_bathrooms, number_of_bedrooms
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+propertyColumns,
		p.OwnerID,
		p.Title,
		p.Description,
		p.ThumbnailPhotoURL,
		p.CoverPhotoURL,
		p.CostPerNight,
		p.Street,
		p.City,
		p.Province,
		p.PostCode,
		p.Country,
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
	)

	var created model.Property
	if err := row.Scan(propertyScanTargets(&created)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("create property: no row returned")
		}
		return nil, fmt.Errorf("create property: %w", sqlerr.Wrap(err))
	}
	return &created, nil
}

// propertyScanTargets returns pointers in propertyColumnNames order.
func propertyScanTargets(p *model.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Country,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
	}
}
