package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the minimal identity envelope carried by a session token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Issuer    string
}

// Service issues and verifies signed, time-bound identity tokens.
type Service interface {
	Issue(userID string, now time.Time) (token string, exp time.Time, err error)
	Verify(token string, now time.Time) (Claims, error)
}

type hs256Service struct {
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration
	secret    []byte
}

// NewHS256Service builds a Service signing HS256 JWTs with cfg.Secret.
func NewHS256Service(cfg Config) (Service, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, ErrConfig
	}
	if cfg.TTL <= 0 || cfg.ClockSkew < 0 || strings.TrimSpace(cfg.Issuer) == "" {
		return nil, ErrConfig
	}

	return &hs256Service{
		issuer:    cfg.Issuer,
		ttl:       cfg.TTL,
		clockSkew: cfg.ClockSkew,
		secret:    cfg.Secret,
	}, nil
}

func (s *hs256Service) Issue(userID string, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, ErrConfig
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	exp := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *hs256Service) Verify(tokenStr string, now time.Time) (Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return Claims{}, ErrInvalidToken
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			// HS256 only; reject algorithm confusion up front.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{
		UserID: claims.Subject,
		Issuer: claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
