package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedPatch indicates a wire patch could not be parsed.
	// Callers should reject the request rather than attempt partial
	// recovery; decoding never partially succeeds.
	ErrMalformedPatch = errors.New("malformed patch")

	// ErrPageStoreUnavailable indicates the page store is not configured.
	ErrPageStoreUnavailable = errors.New("page store unavailable")
)
