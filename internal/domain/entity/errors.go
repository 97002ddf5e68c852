package entity

import "errors"

// Error kinds. Lower layers wrap one of these with %w so handlers can pick a
// status code with errors.Is instead of matching message text.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("store unavailable")
)
