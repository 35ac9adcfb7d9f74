package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
)

// AccessIssuer is the "iss" claim the API puts on session tokens. Reset and activation tokens
// carry other issuers.
const AccessIssuer = "access"

// NowTimeFunc is swapped in tests.
var NowTimeFunc = time.Now

// Claims is what the client can learn about a bearer token without the signing key.
type Claims struct {
	Subject   string    // User ID
	Issuer    string    // "access" for session tokens
	ExpiresAt time.Time // Zero when the token has no exp claim
}

// Inspect decodes the claims of a JWT without verifying its signature; verification is the
// API's job. Opaque (non-JWT) tokens return ErrInvalidToken.
func Inspect(rawToken string) (Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Claims{}, apperrors.ErrInvalidToken
	}

	claims := &jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return Claims{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "parse token: %v", err)
	}

	c := Claims{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether the exp claim has passed. Tokens without exp never expire here.
func (c Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && !NowTimeFunc().Before(c.ExpiresAt)
}

// Remaining is the time left before expiry, zero once expired or when unknown.
func (c Claims) Remaining() time.Duration {
	if c.ExpiresAt.IsZero() {
		return 0
	}
	if d := c.ExpiresAt.Sub(NowTimeFunc()); d > 0 {
		return d
	}
	return 0
}
