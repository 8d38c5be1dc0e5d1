package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a token string and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
)

// HS256Signer signs session tokens with HMAC-SHA256 using a single
// process-wide secret. The secret comes from configuration, never from
// request state.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer from a shared secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes the claims and turns them into a signed compact token string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates tokens signed with the matching shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewVerifierHS256 creates a verifier for HS256 tokens. An empty issuer
// disables issuer enforcement.
func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify validates the token string and returns its parsed claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is validated through Claims.ValidateExpiry so the error
		// kinds stay within this package.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrInvalidSig
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateSubject(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
