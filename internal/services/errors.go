package services

import "errors"

// Service-level failure categories. Handlers map these to HTTP
// statuses; anything else is an internal error.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned on any login failure without
	// revealing whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
)
