package auth

import "errors"

var (
	// ErrInvalidToken indicates a missing, malformed, or expired token.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
