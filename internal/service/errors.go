package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// The typed catalog errors (validation, not found, conflict) live in the
// domain package; the sentinels here cover outcomes specific to a service.
var (
	// ErrInvalidCredentials indicates a login attempt with an unknown username
	// or a wrong password. Both cases share this error so callers cannot tell
	// which one occurred.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Conflict messages reported to API clients.
const (
	msgISBNExists      = "a book with this ISBN already exists"
	msgAuthorHasBooks  = "cannot delete; author has associated books"
	msgUsernameIsTaken = "username already taken"
)
