// Package token issues and verifies gate's signed session tokens.
//
// Tokens are HS256 JWTs carrying the owning user id as subject plus a fixed
// TTL. They are stateless: nothing is persisted server-side, so verification
// is signature + expiry only.
//
// Design goals:
// - One process-wide signing secret, loaded once at startup, never rotated
//   at runtime.
// - Verify collapses every failure (malformed, bad signature, expired, wrong
//   issuer) into ErrInvalidToken so callers treat them identically.
// - Clock-skew leeway is applied during verification only.
//
// Known limitation: logout cannot invalidate an issued token before its
// natural expiry; there is no server-side revocation list.
package token
