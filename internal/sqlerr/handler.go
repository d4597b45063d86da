package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/emmanueletti/lightbnb/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code for a given error.
//
// Both normalized (*Error) and raw (*pgconn.PgError) errors are
// recognized; anything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates "<DOMAIN>_<ACTION>" codes such as
// USER_ALREADY_EXISTS. For a foreign key violation the domain is the
// missing referenced entity (OWNER_NOT_FOUND), otherwise the table.
func generateErrorCode(sqlErr *Error) string {
	domain := "RECORD"
	if sqlErr.TableName != "" {
		domain = strings.ToUpper(singular(sqlErr.TableName))
	}

	action := "ERROR"
	switch sqlErr.Code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
		if ref := referencedEntity(columnOf(sqlErr)); ref != "" {
			domain = strings.ToUpper(ref)
		}
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return domain + "_" + action
}

// columnOf returns the offending column. Postgres omits it for foreign key
// violations, so it is recovered from a <table>_<column>_fkey constraint.
func columnOf(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}
	name := sqlErr.ConstraintName
	if sqlErr.Code != ForeignKeyViolation || !strings.HasSuffix(name, "_fkey") {
		return ""
	}
	name = strings.TrimSuffix(name, "_fkey")
	if sqlErr.TableName != "" {
		name = strings.TrimPrefix(name, sqlErr.TableName+"_")
	}
	return name
}

// referencedEntity maps "owner_id" to "owner"; other columns yield "".
func referencedEntity(column string) string {
	lower := strings.ToLower(column)
	if !strings.HasSuffix(lower, "_id") {
		return ""
	}
	return strings.TrimSuffix(lower, "_id")
}

// singular handles the plural table names of this schema: users,
// properties, reservations, property_reviews.
func singular(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "ies") && len(name) > 3:
		return name[:len(name)-3] + matchCase(name, "y")
	case strings.HasSuffix(lower, "s") && len(name) > 1:
		return name[:len(name)-1]
	}
	return name
}

func matchCase(ref, s string) string {
	if strings.ToUpper(ref) == ref {
		return strings.ToUpper(s)
	}
	return s
}

// formatUserFriendlyMessage produces an end-user-facing message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, columnOf(sqlErr))

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced later when the column can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: "owner_id" -> "Owner", then the
// singular table name, then "record".
func getEntityName(tableName, columnName string) string {
	if entity := referencedEntity(columnName); entity != "" {
		return humanizeText(entity)
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var constraintKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a unique
// constraint name. Supported conventions: unique_<table>_<column> and
// <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := constraintKeyRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - unique violation: 409 with e.g. USER_ALREADY_EXISTS
//   - foreign key / not null / check violation: 400
//   - ErrNoRows: 404
//   - anything else: 500
//
// The original error is always kept as the cause.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil).WithCause(err)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, &errorCode).WithCause(err)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors).WithCause(err)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil).WithCause(err)

		default:
			return errs.NewInternalServerError().WithCause(err)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil).WithCause(err)
	}

	return errs.NewInternalServerError().WithCause(err)
}
