package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password`

// UserRepository reads and writes the users table.
type UserRepository struct {
	db DBTX
}

// NewUserRepository returns a UserRepository over db.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns the user with exactly this email, or nil when none
// matches. The comparison is case-sensitive.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", sqlerr.Wrap(err))
	}
	return u, nil
}

// GetByID returns the user with this id, or nil when none matches.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", sqlerr.Wrap(err))
	}
	return u, nil
}

// Create inserts a user and returns the persisted row. A duplicate email
// surfaces as a sqlerr.UniqueViolation.
func (r *UserRepository) Create(ctx context.Context, u model.NewUser) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		u.Name, u.Email, u.Password,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", sqlerr.Wrap(err))
	}
	if created == nil {
		return nil, errors.New("create user: no row returned")
	}
	return created, nil
}

// scanUser maps a row, returning nil, nil for pgx.ErrNoRows.
func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
