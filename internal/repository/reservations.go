package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `id, guest_id, property_id, start_date, end_date`

// ReservationRepository reads and writes reservations.
type ReservationRepository struct {
	db DBTX
}

// NewReservationRepository returns a ReservationRepository over db.
func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ListUpcoming returns the guest's reservations starting strictly after
// today (database clock), soonest first, joined to their properties.
func (r *ReservationRepository) ListUpcoming(ctx context.Context, guestID int64, limit int) ([]model.ReservationWithProperty, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			reservations.id, reservations.guest_id, reservations.property_id,
			reservations.start_date, reservations.end_date,
			`+qualifiedPropertyColumns+`
		FROM reservations
		JOIN properties ON reservations.property_id = properties.id
		WHERE reservations.guest_id = $1
		  AND reservations.start_date > CURRENT_DATE
		ORDER BY reservations.start_date, reservations.id
		LIMIT $2
	`, guestID, model.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("list upcoming reservations: %w", sqlerr.Wrap(err))
	}
	defer rows.Close()

	// The limit is caller-supplied; only the default sizes the buffer.
	out := make([]model.ReservationWithProperty, 0, min(model.Limit(limit), model.DefaultLimit))
	for rows.Next() {
		var res model.ReservationWithProperty
		targets := []any{
			&res.ID,
			&res.GuestID,
			&res.PropertyID,
			&res.StartDate,
			&res.EndDate,
		}
		if err := rows.Scan(append(targets, propertyScanTargets(&res.Property)...)...); err != nil {
			return nil, fmt.Errorf("list upcoming reservations: scan: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list upcoming reservations: %w", sqlerr.Wrap(err))
	}
	return out, nil
}

// Create books a property for a guest. Unknown guests or properties
// surface as a sqlerr.ForeignKeyViolation, an empty stay as a
// sqlerr.CheckViolation.
func (r *ReservationRepository) Create(ctx context.Context, res model.NewReservation) (*model.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reservations (guest_id, property_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reservationColumns,
		res.GuestID, res.PropertyID, res.StartDate, res.EndDate,
	)

	var created model.Reservation
	err := row.Scan(&created.ID, &created.GuestID, &created.PropertyID, &created.StartDate, &created.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("create reservation: no row returned")
		}
		return nil, fmt.Errorf("create reservation: %w", sqlerr.Wrap(err))
	}
	return &created, nil
}
