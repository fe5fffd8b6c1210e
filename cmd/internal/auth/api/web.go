package api

import (
	"net/http"
	"strings"
	"time"
)

// Session transport: the signed token travels in a single HttpOnly cookie.
// Logout is purely client-side cookie removal; the server keeps no
// revocation list, so a stolen token stays valid until natural expiry.

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	if h == nil || w == nil {
		return
	}
	c := &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.cfg.CookieSameSite,
	}
	// Without a known token expiry the cookie is a session cookie; inventing
	// a lifetime here would let the cookie outlive or undercut the token.
	if !exp.IsZero() {
		c.Expires = exp
	}
	http.SetCookie(w, c)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	if h == nil || w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.cfg.CookieSameSite,
	})
}

func (h *Handler) sessionTokenFromCookie(r *http.Request) (string, bool) {
	if h == nil || r == nil {
		return "", false
	}
	c, err := r.Cookie(h.cfg.CookieName)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	return v, true
}
