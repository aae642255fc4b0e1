// Package repository holds shared helpers for the GORM repository
// implementations.
package repository

import (
	"errors"

	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors, keeping
// database concerns inside the infrastructure layer. The error chain is
// traversed because GORM wraps driver errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}
