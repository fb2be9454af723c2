package store

import (
	"errors"
	"fmt"

	"github.com/mwantia/lentil/pkg/db/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// wrap converts gorm's not-found error into ErrNotFound and adds context to everything else.
// Validation errors are passed through untouched.
func wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	if models.IsValidationError(err) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", msg, err)
}
