package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidReference is returned when a supplied identifier cannot be
	// parsed into the store's reference type.
	ErrInvalidReference = errors.New("invalid store reference")

	// ErrStoreUnavailable is returned when the underlying store cannot be
	// reached. Callers surface it as a generic server error without detail.
	ErrStoreUnavailable = errors.New("store unavailable")
)
