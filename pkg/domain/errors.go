// Package domain holds entities and errors shared across the security core.
package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrConflict is returned when a concurrent update wins over this one
	ErrConflict = errors.New("conflicting update")
	// ErrIntegrity is returned on precondition violations that indicate a
	// logic bug upstream; callers must abort their unit of work
	ErrIntegrity = errors.New("integrity violation")
)
