// Package identity owns gate's user records and their persistence boundary.
//
// A user is keyed by a ULID and carries two globally unique natural keys:
// normalized email and trimmed phone number. Uniqueness is enforced by the
// storage engine (UNIQUE constraints in Postgres, map keys in the memory
// store), so a race between two registrations for the same email is resolved
// by the second writer receiving a ConflictError, never by application-level
// locking.
package identity
