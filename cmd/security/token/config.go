package token

import (
	"os"
	"strings"
	"time"
)

// minSecretBytes is the minimum accepted HMAC secret length.
// 32 bytes matches the HS256 output size; anything shorter weakens the MAC.
const minSecretBytes = 32

// Config defines runtime configuration for the token service.
//
// It is environment-driven so deployments can tune TTL and skew without code
// changes. The signing secret is process-wide state: loaded once, immutable
// for the process lifetime.
type Config struct {
	// Issuer is the value set in the "iss" claim.
	Issuer string

	// TTL defines the lifetime of issued tokens.
	TTL time.Duration

	// ClockSkew defines the allowed time skew during verification.
	ClockSkew time.Duration

	// Secret is the HS256 signing key (>= 32 bytes).
	Secret []byte
}

// DefaultConfig returns defaults suitable for development.
// The secret has no default; it must always be provided.
func DefaultConfig() Config {
	return Config{
		Issuer:    "gate",
		TTL:       24 * time.Hour,
		ClockSkew: 30 * time.Second,
	}
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Required:
//   - GATE_AUTH_SECRET (>= 32 bytes)
//
// Optional (durations must be valid Go duration strings):
//   - GATE_AUTH_ISSUER
//   - GATE_AUTH_TOKEN_TTL
//   - GATE_AUTH_CLOCK_SKEW
//
// Returns ErrConfig if configuration is invalid. Fail-fast is intentional:
// silently running without a signing secret is unacceptable.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("GATE_AUTH_ISSUER"); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("GATE_AUTH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	if v := os.Getenv("GATE_AUTH_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.ClockSkew = d
	}

	secret := strings.TrimSpace(os.Getenv("GATE_AUTH_SECRET"))
	if len(secret) < minSecretBytes {
		return Config{}, ErrConfig
	}
	cfg.Secret = []byte(secret)

	return cfg, nil
}
