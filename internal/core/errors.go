package core

import "github.com/pkg/errors"

// Error kinds the API layer maps to HTTP statuses. Services wrap these with
// context; handlers classify with errors.Is. Anything that doesn't match a
// sentinel is a storage-level failure and surfaces as a generic 500.
var (
	// ErrValidation marks a request rejected before any side effect.
	ErrValidation = errors.New("invalid request")

	// ErrUpstream marks a failed or unusable answering-service response.
	ErrUpstream = errors.New("answering service failed")

	// ErrNotFound marks a reference to a chat entry that doesn't exist.
	ErrNotFound = errors.New("chat entry not found")
)
