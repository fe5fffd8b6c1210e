// Package password provides one-way credential hashing for gate.
//
// It implements Argon2id with a PHC-like encoded string format:
// - Configurable cost parameters (via environment variables)
// - Strict hash decoding with anti-DoS bounds during Verify
// - Constant-time comparison of derived keys
//
// Security notes:
// - Encoded hashes are treated as untrusted input during Verify.
// - Verification refuses hashes whose parameters exceed reasonable bounds.
// - The plaintext password never appears in errors or logs.
package password
