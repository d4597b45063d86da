// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and the row mapping for users,
// properties and reservations. Every statement binds its values as
// positional parameters; nothing caller-supplied is interpolated.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by the repositories. *pgxpool.Pool,
// *pgxpool.Conn and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Users        *UserRepository
	Properties   *PropertyRepository
	Reservations *ReservationRepository
}

// NewRepositories constructs every repository over the same DBTX.
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Properties:   NewPropertyRepository(db),
		Reservations: NewReservationRepository(db),
	}
}
