package api

import (
	"errors"
	"fmt"
)

// Failure kinds the handler maps onto the wire contract. Anything a
// Service method returns that is not one of these is treated as an
// internal fault.
var (
	ErrConflict           = errors.New("user already exists")
	ErrNotFound           = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUnauthenticated    = errors.New("invalid token")
)

// ValidationError reports the first missing request field. Fields are
// checked in a fixed order, so a request missing several fields always
// names the same one.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func asValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
