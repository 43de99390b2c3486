package service

import "errors"

// Error kinds surfaced by the social-action coordinator. Handlers map these
// to HTTP statuses; anything else is unexpected and reported generically.
var (
	// ErrNotFound means a referenced entity (user, post, notification) is absent
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means malformed or missing required input, including self-referential actions
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized means the caller is not the owning actor of the target
	ErrUnauthorized = errors.New("unauthorized")
)
