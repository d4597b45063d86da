// Package service contains the caller-side business logic.
//
// It sits on top of the repository layer: it validates input, converts
// currency amounts, and turns "absent" results and driver errors into
// *errs.HTTPError values a caller can present.
package service

import (
	"context"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/repository"
	"github.com/rs/zerolog"
)

// UserStore is the user persistence used by UserService.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u model.NewUser) (*model.User, error)
}

// PropertyStore is the property persistence used by PropertyService.
type PropertyStore interface {
	Search(ctx context.Context, f model.PropertySearch, limit int) ([]model.PropertyWithRating, error)
	Create(ctx context.Context, p model.NewProperty) (*model.Property, error)
}

// ReservationStore is the reservation persistence used by
// ReservationService.
type ReservationStore interface {
	ListUpcoming(ctx context.Context, guestID int64, limit int) ([]model.ReservationWithProperty, error)
}

// Services is a container for all service instances.
type Services struct {
	Users        *UserService
	Properties   *PropertyService
	Reservations *ReservationService
}

// NewServices wires one service per repository, sharing logger.
func NewServices(repos *repository.Repositories, logger *zerolog.Logger) *Services {
	return &Services{
		Users:        NewUserService(repos.Users, logger),
		Properties:   NewPropertyService(repos.Properties, logger),
		Reservations: NewReservationService(repos.Reservations, logger),
	}
}
