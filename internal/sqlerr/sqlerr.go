// Package sqlerr specifically handles database driver errors.
//
// It parses the SQLSTATE codes reported by Postgres into a small set
// of categories (unique violation, foreign key violation, ...) and
// converts them into user-friendly application errors.
package sqlerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a database-agnostic error category.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	TooManyConnections  Code = "too_many_connections"
	ConnectionFailure   Code = "connection_failure"
	QueryCanceled       Code = "query_canceled"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
	InvalidText         Code = "invalid_text_representation"
)

// Severity mirrors the Postgres severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error. It keeps the driver error so
// errors.As(err, **pgconn.PgError) still works on it.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.ConstraintName, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code.
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "53300":
		return TooManyConnections
	case "08000", "08003", "08006", "08001", "08004":
		return ConnectionFailure
	case "57014":
		return QueryCanceled
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "22P02":
		return InvalidText
	default:
		return Other
	}
}

// MapSeverity maps the (unlocalized) Postgres severity onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// Wrap normalizes a driver error for callers of the repositories.
//
// A *pgconn.PgError anywhere in the chain becomes a *Error; anything else
// is returned unchanged. nil stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	return err
}

// IsUniqueViolation reports whether err was caused by a unique constraint.
func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}

// IsForeignKeyViolation reports whether err was caused by a missing
// referenced row.
func IsForeignKeyViolation(err error) bool {
	return ErrCode(err) == ForeignKeyViolation
}
