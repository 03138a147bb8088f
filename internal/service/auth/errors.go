package auth

import "errors"

// Token and password failures. The API answers every token error with 401.
var (
	// ErrInvalidToken covers malformed bearer tokens, bad signatures and
	// tokens without a positive user ID or a username subject.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once a token's exp has passed, after leeway.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned for a token whose nbf lies in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken means the request carried no Authorization header, or
	// the profile lookup found no user in the request context.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrPasswordMismatch is returned by Bcrypt.Compare when a login password
	// does not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)
