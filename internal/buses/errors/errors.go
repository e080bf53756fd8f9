package errors

import "errors"

var (
	ErrNotFound = errors.New("bus not found")

	ErrInvalidID = errors.New("invalid bus ID format")

	ErrSeatNotFound = errors.New("seat not found on bus")

	ErrSeatUnavailable = errors.New("seat is not available")
)
