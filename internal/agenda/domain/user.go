package domain

import "time"

// User is an account holder. Users are created once at registration and are
// immutable afterwards; the email doubles as the login identifier and the
// session-token subject.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string // bcrypt encoded, never plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
