package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements user persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via
//   identifiers.
// - Uniqueness of email_norm and phone_number is enforced by named UNIQUE
//   constraints; violations are mapped to ConflictError with the logical
//   field name.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the user store (default "gate").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "gate",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

// EnsureSchema creates the schema and users table if they do not exist.
// Additive-only; it never drops or rewrites existing data.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return OpError{Op: "identity.EnsureSchema", Kind: ErrInvalidInput, Msg: "nil store"}
	}

	users := pgIdent(s.schema, "users")

	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS ` + pgx.Identifier{s.schema}.Sanitize(),
		`CREATE TABLE IF NOT EXISTS ` + users + ` (
		     id            TEXT PRIMARY KEY,
		     name          TEXT NOT NULL,
		     email         TEXT NOT NULL,
		     email_norm    TEXT NOT NULL,
		     phone_number  TEXT NOT NULL,
		     password_hash TEXT NOT NULL,
		     created_at    TIMESTAMPTZ NOT NULL,
		     updated_at    TIMESTAMPTZ NOT NULL,
		     CONSTRAINT uq_users_email_norm UNIQUE (email_norm),
		     CONSTRAINT uq_users_phone_number UNIQUE (phone_number)
		 )`,
	}

	for _, q := range stmts {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("identity: ensure schema: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user record.
func (s *PostgresStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	if s == nil || s.pool == nil {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := NormalizePhone(in.PhoneNumber)

	if name == "" {
		return User{}, pgInvalid(op, "name is required")
	}
	if email == "" {
		return User{}, pgInvalid(op, "email is required")
	}
	if phone == "" {
		return User{}, pgInvalid(op, "phone_number is required")
	}
	if strings.TrimSpace(in.PasswordHash) == "" {
		return User{}, pgInvalid(op, "password_hash is required")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	userID, err := NewULID(now)
	if err != nil {
		return User{}, err
	}

	emailNorm := NormalizeEmail(email)
	users := pgIdent(s.schema, "users")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+users+` (
		     id, name, email, email_norm, phone_number, password_hash, created_at, updated_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		userID,
		name,
		email,
		emailNorm,
		phone,
		in.PasswordHash,
		now,
	)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return User{}, ConflictError{Op: op, Field: field}
		}
		return User{}, err
	}

	return User{
		ID:           userID,
		Name:         name,
		Email:        email,
		EmailNorm:    emailNorm,
		PhoneNumber:  phone,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetUserByEmail resolves a user by normalized email, including the password
// hash for credential comparison.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.GetUserByEmail"

	if s == nil || s.pool == nil {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	emailNorm := NormalizeEmail(email)
	if emailNorm == "" {
		return User{}, pgInvalid(op, "missing email")
	}

	users := pgIdent(s.schema, "users")

	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, email_norm, phone_number, password_hash, created_at, updated_at
		   FROM `+users+`
		  WHERE email_norm = $1`,
		emailNorm,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.EmailNorm,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, NotFoundError{Op: op, Resource: "user"}
		}
		return User{}, err
	}

	return u, nil
}

// GetUserByID resolves a user by id. The password hash column is not selected.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (User, error) {
	const op = "identity.GetUserByID"

	if s == nil || s.pool == nil {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, pgInvalid(op, "missing id")
	}

	users := pgIdent(s.schema, "users")

	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, email_norm, phone_number, created_at, updated_at
		   FROM `+users+`
		  WHERE id = $1`,
		id,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.EmailNorm,
		&u.PhoneNumber,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, NotFoundError{Op: op, Resource: "user"}
		}
		return User{}, err
	}

	return u, nil
}

// ---- helpers ----

// pgInvalid standardizes invalid input errors.
func pgInvalid(op, msg string) error {
	return OpError{Op: op, Kind: ErrInvalidInput, Msg: msg}
}

// pgIdent safely quotes a schema-qualified identifier: "schema"."name".
func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

func pgClassifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != "23505" { // unique_violation
		return "", false
	}

	// Prefer stable schema constraint names. Fall back to heuristic
	// substring matching for externally managed schemas.
	c := strings.ToLower(strings.TrimSpace(pgErr.ConstraintName))

	switch c {
	case "uq_users_email_norm":
		return "email", true
	case "uq_users_phone_number":
		return "phone_number", true
	default:
		switch {
		case strings.Contains(c, "email"):
			return "email", true
		case strings.Contains(c, "phone"):
			return "phone_number", true
		default:
			return "unique", true
		}
	}
}
