package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens. Short-lived
// because there is no revocation: a stolen token stays valid until expiry.
const DefaultSessionTTL = 30 * time.Minute

// Claims are the session-token claims used across the service. The subject
// is the user's login email.
type Claims struct {
	jwt.RegisteredClaims

	// DisplayName is the user's display name, carried for convenience so
	// clients don't need a profile round-trip.
	DisplayName string `json:"name,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session token.
func NewSessionClaims(subject, displayName, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		DisplayName: displayName,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value. An empty
// expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateSubject ensures the subject claim is present.
func (c *Claims) ValidateSubject() error {
	if c.Subject == "" {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt == nil || now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
