package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenVerification indicates a decode failure that is neither an
	// expiry nor a malformed token or bad signature
	ErrTokenVerification = errors.New("token verification failed")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidTokenFormat indicates the Authorization header does not
	// use the "Bearer <token>" format
	ErrInvalidTokenFormat = errors.New("invalid token format, use: Bearer <token>")

	// ErrAuthenticationFailed indicates login or refresh failed. Nonexistent
	// and deactivated accounts both map here so responses don't reveal
	// which case occurred.
	ErrAuthenticationFailed = errors.New("invalid credentials or user not found")
)
