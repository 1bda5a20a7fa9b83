package service

import "errors"

// Typed failures surfaced by the comment service. Handlers translate these
// into HTTP status codes; anything else is an opaque backend failure.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
)
