// Package errs defines the application-level error shape returned to
// callers of the data-access layer.
//
// Database errors are normalized by package sqlerr; errs carries the
// result in a form a web layer can serialize directly: a stable machine
// code, a user-facing message, an HTTP status and optional field errors.
package errs

import "strings"

// FieldError is a field-level validation error.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type surfaced to callers that need a
// user-presentable failure.
//
// Override marks messages that are safe to show to end users verbatim.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`

	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the error this HTTPError was derived from, if any.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is matches any *HTTPError, so errors.Is(err, &HTTPError{}) reports
// whether err has already been translated.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithCause returns a copy of e that unwraps to cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	c := *e
	c.cause = cause
	return &c
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
