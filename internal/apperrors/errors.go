// Package apperrors holds the error kinds shared by every layer of the
// auth service. Callers wrap them with fmt.Errorf("...: %w", ...) and the
// HTTP boundary maps them to status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrInvalidInput is returned when a required argument is missing or empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrValidation is returned by the repository when a record misses a required field.
	ErrValidation = errors.New("validation failed")
	// ErrStorage is returned when the persistence layer is unavailable or rejects a write.
	ErrStorage = errors.New("storage failure")
	// ErrConfiguration is returned when required configuration is absent or malformed.
	ErrConfiguration = errors.New("configuration error")
	// ErrRateLimited marks a request rejected by the admission controller.
	ErrRateLimited = errors.New("too many requests")
)

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrValidation)
}
