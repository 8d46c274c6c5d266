package service

import "errors"

// Failure kinds the HTTP layer maps to status codes. Anything not listed
// here is an internal error: it gets a 500 and a generic message, with the
// detail kept server-side.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so a login response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound means logout found no session matching the
	// presented account/token pair.
	ErrSessionNotFound = errors.New("session not found")

	// ErrForbidden means the caller is authenticated but not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUsernameTaken means account creation collided with an existing
	// username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrValidation marks malformed input.
	ErrValidation = errors.New("invalid input")
)
