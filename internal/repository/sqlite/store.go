package sqlite

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"kundenstopper/internal/repository"
)

// Migrate creates or updates the documents and settings tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&documentRow{}, &settingRow{})
}

// isUniqueConstraintError checks if the error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// convertNotFoundError maps gorm.ErrRecordNotFound to repository.ErrNotFound.
func convertNotFoundError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
