package service

import (
	"context"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/sqlerr"
	"github.com/rs/zerolog"
)

// ReservationService lists guests' reservations.
type ReservationService struct {
	reservations ReservationStore
	log          *zerolog.Logger
}

// NewReservationService returns a ReservationService backed by
// reservations.
func NewReservationService(reservations ReservationStore, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, log: logger}
}

// Upcoming lists the guest's future reservations, soonest first.
func (s *ReservationService) Upcoming(ctx context.Context, guestID int64, limit int) ([]model.ReservationWithProperty, error) {
	out, err := s.reservations.ListUpcoming(ctx, guestID, limit)
	if err != nil {
		s.log.Error().Err(err).Int64("guest_id", guestID).Msg("failed to list upcoming reservations")
		return nil, sqlerr.HandleError(err)
	}
	return out, nil
}
