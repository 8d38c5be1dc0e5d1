package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password length policy in bytes. The upper bound matches bcrypt's input
// limit: anything past 72 bytes would never influence the digest, so longer
// inputs are truncated rather than rejected. This is documented behavior;
// callers that want rejection instead should validate before hashing.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var (
	// ErrPasswordTooShort is returned for passwords under MinPasswordLength bytes.
	ErrPasswordTooShort = errors.New("cryptox: password too short")

	// ErrPasswordMismatch is returned when a password does not match its hash.
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
)

// NormalizePassword applies the length policy: it rejects passwords shorter
// than MinPasswordLength and truncates anything longer than
// MaxPasswordLength to the bound.
func NormalizePassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		password = password[:MaxPasswordLength]
	}
	return password, nil
}

// HashPassword applies the length policy and returns a bcrypt hash of the
// password. bcrypt embeds a per-record random salt and is deliberately slow;
// the default cost must not be lowered to speed up request handling.
func HashPassword(password string) (string, error) {
	password, err := NormalizePassword(password)
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// The same truncation rule used at hash time is applied, so over-length
// inputs verify against the hash of their first 72 bytes.
func VerifyPassword(password, encodedHash string) error {
	if len(password) > MaxPasswordLength {
		password = password[:MaxPasswordLength]
	}

	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
