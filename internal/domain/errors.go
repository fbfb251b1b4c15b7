package domain

import "errors"

// Error kinds recovered at the response boundary. Wrap them with
// fmt.Errorf("...: %w", Err...) and classify with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalid         = errors.New("invalid input")
	ErrUpstream        = errors.New("upstream error")
)
