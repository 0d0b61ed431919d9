// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates a missing session or failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user does not own the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates malformed or out-of-range client input.
	ErrValidation = errors.New("validation")

	// ErrInvalidID indicates an identifier that could not be parsed.
	ErrInvalidID = errors.New("invalid id")
)
