package database

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a user insert or update collides
	// with the unique email constraint.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrConcurrentModification is returned when a conditional status update
	// matches no row because another writer got there first.
	ErrConcurrentModification = errors.New("booking was modified concurrently")
)
