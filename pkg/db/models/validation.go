package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports an attribute that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validateStruct(v any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	// Only the first failing field is reported
	fe := fieldErrs[0]
	return NewValidationError(strings.ToLower(fe.Field()), message(fe.Tag()))
}

func message(tag string) string {
	switch tag {
	case "required":
		return "can't be blank"
	case "url":
		return "is not a valid url"
	default:
		return fmt.Sprintf("failed on '%s'", tag)
	}
}
