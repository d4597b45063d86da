// Package validation turns struct-tag validation failures into
// field-level application errors.
//
// Input types carry `validate` tags (go-playground/validator) and
// implement Validatable; Validate runs them and returns an
// *errs.HTTPError listing every failing field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/emmanueletti/lightbnb/internal/errs"
	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by input types that know how to validate
// themselves, typically by calling validator.Struct on the receiver.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single validation issue that cannot be
// expressed with validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Validate runs v.Validate and converts a failure into a 400
// *errs.HTTPError with one FieldError per failing field.
func Validate(v Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.ValidationError(err)
	}
	return errs.NewBadRequestError(msg, true, nil, fieldErrors).WithCause(err)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: toSnakeCase(fe.Field()),
			Error: message(fe),
		})
	}

	return "Validation failed", fieldErrors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "dive":
		return "some items are invalid"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}

// toSnakeCase maps Go field names (ThumbnailPhotoURL) to the column
// names used in JSON and SQL (thumbnail_photo_url).
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
