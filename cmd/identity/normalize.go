package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
// Uniqueness applies to the normalized form; the user-entered form is stored
// for display.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone trims surrounding whitespace. Digits are kept verbatim;
// format canonicalization (E.164) is a policy decision left to callers.
func NormalizePhone(s string) string {
	return strings.TrimSpace(s)
}
