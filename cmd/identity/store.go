package identity

import (
	"context"
	"time"
)

// User is gate's canonical security principal.
// PasswordHash is the encoded Argon2id string; the plaintext never reaches
// this package.
type User struct {
	ID          string
	Name        string
	Email       string
	EmailNorm   string
	PhoneNumber string

	// PasswordHash is populated only by lookups that exist to authenticate
	// (GetUserByEmail). GetUserByID leaves it empty.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserInput describes a registration request. All fields are required;
// PasswordHash must already be hashed by the caller.
type CreateUserInput struct {
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Now          time.Time
}

// Store is the user persistence boundary.
//
// Error contract:
// - CreateUser returns ConflictError{Field: "email" | "phone_number"} when a
//   uniqueness invariant is violated.
// - Lookups return a NotFoundError-kind error when no row matches.
// - Malformed arguments yield OpError with Kind ErrInvalidInput.
type Store interface {
	// CreateUser inserts a new user record and returns it.
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// GetUserByEmail resolves a user by normalized email, including the
	// password hash for credential comparison.
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// GetUserByID resolves a user by id. The password hash is excluded from
	// the result.
	GetUserByID(ctx context.Context, id string) (User, error)
}
