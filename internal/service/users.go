package service

import (
	"context"

	"github.com/emmanueletti/lightbnb/internal/errs"
	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/sqlerr"
	"github.com/emmanueletti/lightbnb/internal/validation"
	"github.com/rs/zerolog"
)

// Machine codes returned by UserService.
const (
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeUserEmailTaken = "USER_EMAIL_TAKEN"
)

// UserService registers and looks up users.
type UserService struct {
	users UserStore
	log   *zerolog.Logger
}

// NewUserService returns a UserService backed by users.
func NewUserService(users UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, log: logger}
}

// Register validates u and inserts it. A duplicate email is reported as a
// 400 with CodeUserEmailTaken.
func (s *UserService) Register(ctx context.Context, u model.NewUser) (*model.User, error) {
	if err := validation.Validate(&u); err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			code := CodeUserEmailTaken
			return nil, errs.NewBadRequestError("email already registered", true, &code, []errs.FieldError{
				{Field: "email", Error: "is already registered"},
			}).WithCause(err)
		}
		s.log.Error().Err(err).Msg("failed to register user")
		return nil, sqlerr.HandleError(err)
	}

	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Get returns the user with id, or a 404 with CodeUserNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, sqlerr.HandleError(err)
	}
	if u == nil {
		return nil, userNotFound()
	}
	return u, nil
}

// GetByEmail returns the user with exactly this email, or a 404 with
// CodeUserNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get user by email")
		return nil, sqlerr.HandleError(err)
	}
	if u == nil {
		return nil, userNotFound()
	}
	return u, nil
}

func userNotFound() error {
	code := CodeUserNotFound
	return errs.NewNotFoundError("User not found", true, &code)
}
