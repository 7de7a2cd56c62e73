package domain

import "errors"

// Authentication failures are deliberately coarse: the same error covers an
// unknown email and a wrong password, and the same error covers a missing,
// tampered, unknown and expired token. Callers must not leak the cause.
var (
	ErrInvalidCredentials = errors.New("invalid login data")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")

	ErrInvalidRole     = errors.New("invalid role")
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenGeneration = errors.New("session token generation exhausted retries")
)
