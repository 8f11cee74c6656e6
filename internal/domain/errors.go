package domain

import "errors"

var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound covers absent hotels, rooms, users, bookings and payments.
	ErrNotFound = errors.New("not found")
	// ErrRoomUnavailable means an existing booking overlaps the requested stay.
	ErrRoomUnavailable = errors.New("room not available for the requested dates")
	// ErrUnauthorized means the actor may not trigger the requested transition.
	ErrUnauthorized = errors.New("not authorized")
	// ErrInvalidTransition means the target status is unreachable from the
	// booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
