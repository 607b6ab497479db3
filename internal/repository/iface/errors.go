package repository

import "errors"

// ErrNotFound indicates that no record exists for the requested key
var ErrNotFound = errors.New("record not found")

// IsNotFoundError checks if an error is a missing-record failure
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
