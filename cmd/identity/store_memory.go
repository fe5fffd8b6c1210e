package identity

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for dev mode and tests.
//
// Uniqueness is enforced under a single mutex, which gives the same
// second-writer-loses semantics as the Postgres UNIQUE constraints.
type MemoryStore struct {
	mu      sync.Mutex
	byID    map[string]User
	byEmail map[string]string // email_norm -> id
	byPhone map[string]string // phone_number -> id
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
		byPhone: make(map[string]string),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := NormalizePhone(in.PhoneNumber)

	if name == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "name is required"}
	}
	if email == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "email is required"}
	}
	if phone == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "phone_number is required"}
	}
	if strings.TrimSpace(in.PasswordHash) == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "password_hash is required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := NewULID(now)
	if err != nil {
		return User{}, err
	}

	emailNorm := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[emailNorm]; exists {
		return User{}, ConflictError{Op: op, Field: "email"}
	}
	if _, exists := s.byPhone[phone]; exists {
		return User{}, ConflictError{Op: op, Field: "phone_number"}
	}

	u := User{
		ID:           id,
		Name:         name,
		Email:        email,
		EmailNorm:    emailNorm,
		PhoneNumber:  phone,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.byID[id] = u
	s.byEmail[emailNorm] = id
	s.byPhone[phone] = id

	return u, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.GetUserByEmail"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	emailNorm := NormalizeEmail(email)
	if emailNorm == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "missing email"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[emailNorm]
	if !ok {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}
	return s.byID[id], nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (User, error) {
	const op = "identity.GetUserByID"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "missing id"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}

	// Same contract as the Postgres store: lookups by id never expose the hash.
	u.PasswordHash = ""
	return u, nil
}
