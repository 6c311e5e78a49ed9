package db

import "errors"

// Domain errors returned by the store
var (
	// ErrNotFound means no matching row, soft-deleted tasks included
	ErrNotFound = errors.New("record not found")

	// ErrInvalidProject means a task referenced a project that does not exist
	ErrInvalidProject = errors.New("invalid project id")
)
