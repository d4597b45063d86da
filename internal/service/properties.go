package service

import (
	"context"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/sqlerr"
	"github.com/emmanueletti/lightbnb/internal/validation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CreatePropertyInput is a new listing as entered by an owner: the nightly
// price is a currency amount, not cents.
type CreatePropertyInput struct {
	OwnerID           int64           `json:"owner_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	ThumbnailPhotoURL string          `json:"thumbnail_photo_url"`
	CoverPhotoURL     string          `json:"cover_photo_url"`
	CostPerNight      decimal.Decimal `json:"cost_per_night"`
	Street            string          `json:"street"`
	City              string          `json:"city"`
	Province          string          `json:"province"`
	PostCode          string          `json:"post_code"`
	Country           string          `json:"country"`
	ParkingSpaces     int32           `json:"parking_spaces"`
	NumberOfBathrooms int32           `json:"number_of_bathrooms"`
	NumberOfBedrooms  int32           `json:"number_of_bedrooms"`
}

// NewProperty converts the input into the stored shape, rounding the
// price to the nearest cent.
func (in CreatePropertyInput) NewProperty() model.NewProperty {
	return model.NewProperty{
		OwnerID:           in.OwnerID,
		Title:             in.Title,
		Description:       in.Description,
		ThumbnailPhotoURL: in.ThumbnailPhotoURL,
		CoverPhotoURL:     in.CoverPhotoURL,
		CostPerNight:      model.CentsFromDollars(in.CostPerNight),
		Street:            in.Street,
		City:              in.City,
		Province:          in.Province,
		PostCode:          in.PostCode,
		Country:           in.Country,
		ParkingSpaces:     in.ParkingSpaces,
		NumberOfBathrooms: in.NumberOfBathrooms,
		NumberOfBedrooms:  in.NumberOfBedrooms,
	}
}

// PropertyService searches and creates listings.
type PropertyService struct {
	properties PropertyStore
	log        *zerolog.Logger
}

// NewPropertyService returns a PropertyService backed by properties.
func NewPropertyService(properties PropertyStore, logger *zerolog.Logger) *PropertyService {
	return &PropertyService{properties: properties, log: logger}
}

// Search returns at most limit properties matching f, cheapest first.
func (s *PropertyService) Search(ctx context.Context, f model.PropertySearch, limit int) ([]model.PropertyWithRating, error) {
	found, err := s.properties.Search(ctx, f, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to search properties")
		return nil, sqlerr.HandleError(err)
	}
	return found, nil
}

// Create validates and inserts a listing. An unknown owner is a 400.
func (s *PropertyService) Create(ctx context.Context, in CreatePropertyInput) (*model.Property, error) {
	p := in.NewProperty()
	if err := validation.Validate(&p); err != nil {
		return nil, err
	}

	created, err := s.properties.Create(ctx, p)
	if err != nil {
		if !sqlerr.IsForeignKeyViolation(err) {
			s.log.Error().Err(err).Int64("owner_id", p.OwnerID).Msg("failed to create property")
		}
		return nil, sqlerr.HandleError(err)
	}

	s.log.Info().
		Int64("property_id", created.ID).
		Int64("owner_id", created.OwnerID).
		Str("cost_per_night", created.CostPerNightDollars().StringFixed(2)).
		Msg("property created")
	return created, nil
}
