package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations
	// (duplicate email, second shop per seller, second review per user).
	ErrDuplicate = errors.New("duplicate")
)
