package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses.
var (
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner marks a write attempted by someone other than the record's
	// owner. Ownership is re-derived from the verified credential on every
	// update, never trusted from the client.
	ErrNotOwner = errors.New("not the owner of this resource")
)
