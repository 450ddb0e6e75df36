package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a write collides with existing data,
	// such as two company names deriving the same customer code
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidStatus is returned when a status value is outside the
	// enumerated set
	ErrInvalidStatus = errors.New("invalid status")

	// ErrLegacyUnavailable is returned when the legacy warehouse connection
	// is not configured
	ErrLegacyUnavailable = errors.New("legacy warehouse not available")
)
