package token

import "errors"

var (
	// ErrInvalidToken is returned when a token fails verification for any
	// reason: malformed input, bad signature, expiry, or claim mismatch.
	ErrInvalidToken = errors.New("invalid token")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid token config")
)
