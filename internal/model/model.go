// Package model holds the row shapes read from and written to the
// lightbnb schema.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a row of the users table. Password is stored and compared as
// opaque text by this layer.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// NewUser is the input for registering a user.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func (u *NewUser) Validate() error {
	return validate.Struct(u)
}

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int64  `json:"id"`
	OwnerID           int64  `json:"owner_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url"`
	CostPerNight      int64  `json:"cost_per_night"`
	Street            string `json:"street"`
	City              string `json:"city"`
	Province          string `json:"province"`
	PostCode          string `json:"post_code"`
	Country           string `json:"country"`
	ParkingSpaces     int32  `json:"parking_spaces"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms"`
}

// CostPerNightDollars converts the stored cents for display.
func (p Property) CostPerNightDollars() decimal.Decimal {
	return DollarsFromCents(p.CostPerNight)
}

// NewProperty carries the fourteen columns inserted for a new listing.
// CostPerNight is in cents.
type NewProperty struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"required,url,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"required,url,max=255"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
	Country           string `json:"country" validate:"required,max=255"`
	ParkingSpaces     int32  `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" validate:"gte=0"`
}

func (p *NewProperty) Validate() error {
	return validate.Struct(p)
}

// PropertyWithRating is a search result. AverageRating is nil for a
// property without reviews.
type PropertyWithRating struct {
	Property
	AverageRating *float64 `json:"average_rating"`
}

// Reservation is a row of the reservations table.
type Reservation struct {
	ID         int64     `json:"id"`
	GuestID    int64     `json:"guest_id"`
	PropertyID int64     `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// NewReservation is the input for booking a property. Dates are calendar
// days; the time of day is ignored.
type NewReservation struct {
	GuestID    int64     `json:"guest_id" validate:"required,gt=0"`
	PropertyID int64     `json:"property_id" validate:"required,gt=0"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

func (r *NewReservation) Validate() error {
	return validate.Struct(r)
}

// ReservationWithProperty is a reservation joined to the property it
// books.
type ReservationWithProperty struct {
	Reservation
	Property Property `json:"property"`
}

// PropertyReview is a row of the property_reviews table.
type PropertyReview struct {
	ID            int64  `json:"id"`
	GuestID       int64  `json:"guest_id"`
	PropertyID    int64  `json:"property_id"`
	ReservationID int64  `json:"reservation_id"`
	Rating        int16  `json:"rating"`
	Message       string `json:"message"`
}
