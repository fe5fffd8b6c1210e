package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gate/cmd/identity"
	"gate/cmd/security/password"
	"gate/cmd/security/token"
)

// Service carries the credential workflows: registration, login and
// token verification. It owns no transport concerns; the Handler
// translates its results into HTTP.
type Service struct {
	store  identity.Store
	tokens token.Service
	hasher password.Params
	now    func() time.Time
}

func NewService(store identity.Store, tokens token.Service, hasher password.Params) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		hasher: hasher,
		now:    time.Now,
	}
}

// Session is the result of a successful register or login: the signed
// token to hand to the client plus its expiry for the cookie.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// Register creates a new user and opens a session for it.
//
// Input fields are checked one at a time in a fixed order so the first
// gap is the one reported. Email uniqueness is pre-checked for the
// common case; the store's own constraint remains the backstop under
// concurrent registration.
func (s *Service) Register(ctx context.Context, in registerRequest) (Session, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Session{}, &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(in.Email) == "" {
		return Session{}, &ValidationError{Field: "email"}
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		return Session{}, &ValidationError{Field: "phoneNumber"}
	}
	if in.Password == "" {
		return Session{}, &ValidationError{Field: "password"}
	}

	_, err := s.store.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return Session{}, ErrConflict
	case identity.IsNotFound(err):
		// free to register
	default:
		return Session{}, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, identity.CreateUserInput{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Now:          s.now(),
	})
	if err != nil {
		if identity.IsConflict(err) {
			return Session{}, ErrConflict
		}
		return Session{}, fmt.Errorf("register: create user: %w", err)
	}

	return s.openSession(user.ID)
}

// Login checks credentials and opens a session. A missing user and a
// wrong password are reported as distinct failures.
func (s *Service) Login(ctx context.Context, in loginRequest) (Session, error) {
	if strings.TrimSpace(in.Email) == "" {
		return Session{}, &ValidationError{Field: "email"}
	}
	if in.Password == "" {
		return Session{}, &ValidationError{Field: "password"}
	}

	user, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if identity.IsNotFound(err) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("login: lookup email: %w", err)
	}

	// A Verify error means the stored hash is malformed, not that the
	// caller got the password wrong.
	ok, err := s.hasher.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("login: verify password: %w", err)
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	return s.openSession(user.ID)
}

// VerifyToken validates a presented session token and confirms the
// subject still exists. An absent or unparsable token is an
// authentication failure, not an internal one.
func (s *Service) VerifyToken(ctx context.Context, raw string) (identity.User, error) {
	if strings.TrimSpace(raw) == "" {
		return identity.User{}, ErrUnauthenticated
	}

	claims, err := s.tokens.Verify(raw, s.now())
	if err != nil {
		return identity.User{}, ErrUnauthenticated
	}

	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if identity.IsNotFound(err) {
			return identity.User{}, ErrNotFound
		}
		return identity.User{}, fmt.Errorf("verify: lookup user: %w", err)
	}
	return user, nil
}

func (s *Service) openSession(userID string) (Session, error) {
	tok, exp, err := s.tokens.Issue(userID, s.now())
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{UserID: userID, Token: tok, ExpiresAt: exp}, nil
}
