package api

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Config controls auth API behavior and cookie attributes.
type Config struct {
	CookieName     string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite

	MaxBodyBytes int64
}

// DefaultConfig returns the defaults for the session cookie transport.
// The cookie is always HttpOnly; that is not configurable.
func DefaultConfig() Config {
	return Config{
		CookieName:     "token",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		MaxBodyBytes:   1 << 20, // 1 MiB
	}
}

// LoadConfigFromEnv loads auth config from environment variables with safe
// defaults.
//
// Env surface:
// - GATE_AUTH_COOKIE_NAME
// - GATE_AUTH_COOKIE_PATH
// - GATE_AUTH_COOKIE_DOMAIN
// - GATE_AUTH_COOKIE_SECURE
// - GATE_AUTH_COOKIE_SAMESITE (lax|strict|none)
// - GATE_AUTH_MAX_BODY_BYTES
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("GATE_AUTH_COOKIE_NAME")); v != "" {
		cfg.CookieName = v
	}
	if v := strings.TrimSpace(os.Getenv("GATE_AUTH_COOKIE_PATH")); v != "" {
		cfg.CookiePath = v
	}
	if v := strings.TrimSpace(os.Getenv("GATE_AUTH_COOKIE_DOMAIN")); v != "" {
		cfg.CookieDomain = v
	}
	if v := strings.TrimSpace(os.Getenv("GATE_AUTH_COOKIE_SECURE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CookieSecure = b
		}
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GATE_AUTH_COOKIE_SAMESITE"))) {
	case "strict":
		cfg.CookieSameSite = http.SameSiteStrictMode
	case "none":
		cfg.CookieSameSite = http.SameSiteNoneMode
	case "lax", "":
		// default stays
	}
	if v := strings.TrimSpace(os.Getenv("GATE_AUTH_MAX_BODY_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	return cfg
}
