package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/emmanueletti/lightbnb/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmailErr() *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestWrapKeepsDriverError(t *testing.T) {
	assert.NoError(t, Wrap(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, Wrap(plain))

	wrapped := Wrap(fmt.Errorf("insert user: %w", uniqueEmailErr()))

	var sqlErr *Error
	require.ErrorAs(t, wrapped, &sqlErr)
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, "users_email_key", sqlErr.ConstraintName)
	assert.Equal(t, SeverityError, sqlErr.Severity)

	var pgerr *pgconn.PgError
	require.ErrorAs(t, wrapped, &pgerr)
	assert.Equal(t, "23505", pgerr.Code)

	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))
	assert.Same(t, wrapped, Wrap(wrapped))
}

func TestErrCodeOnRawPgError(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(uniqueEmailErr()))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"unique", &Error{Code: UniqueViolation, TableName: "users"}, "USER_ALREADY_EXISTS"},
		{"fk column", &Error{Code: ForeignKeyViolation, TableName: "properties", ColumnName: "owner_id"}, "OWNER_NOT_FOUND"},
		{"fk constraint", &Error{Code: ForeignKeyViolation, TableName: "property_reviews", ConstraintName: "property_reviews_reservation_id_fkey"}, "RESERVATION_NOT_FOUND"},
		{"fk unknown column", &Error{Code: ForeignKeyViolation, TableName: "properties"}, "PROPERTY_NOT_FOUND"},
		{"not null", &Error{Code: NotNullViolation, TableName: "reservations"}, "RESERVATION_REQUIRED"},
		{"no table", &Error{Code: Other}, "RECORD_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateErrorCode(tt.err))
		})
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("users_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(Wrap(uniqueEmailErr()))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.True(t, IsUniqueViolation(err))
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23503",
		TableName:      "properties",
		ColumnName:     "owner_id",
		ConstraintName: "properties_owner_id_fkey",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "OWNER_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Owner does not exist", httpErr.Message)
}

func TestHandleErrorForeignKeyFromConstraintName(t *testing.T) {
	err := HandleError(Wrap(&pgconn.PgError{
		Code:           "23503",
		TableName:      "reservations",
		ConstraintName: "reservations_guest_id_fkey",
	}))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "GUEST_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Guest does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "email"})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "The Email is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
}

func TestHandleErrorFallbacks(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	already := errs.NewNotFoundError("User not found", true, nil)
	assert.Same(t, already, HandleError(already))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(pgx.ErrNoRows), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	cause := errors.New("connection reset by peer")
	err := HandleError(cause)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.ErrorIs(t, err, cause)
}
