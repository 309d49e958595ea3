package repository

import "errors"

var (
	// ErrDuplicateEmail is returned when signing up with an email that is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when saving a user whose id is not in the
	// registry.
	ErrUserNotFound = errors.New("user not found")
	// ErrCorruptRecord marks a stored record that failed to deserialize.
	// Callers fall back to an empty state instead of aborting.
	ErrCorruptRecord = errors.New("corrupt stored record")
)
