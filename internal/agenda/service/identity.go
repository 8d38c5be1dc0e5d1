package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teyroberto/agenda/internal/agenda/domain"
	"github.com/teyroberto/agenda/internal/agenda/store"
	"github.com/teyroberto/agenda/pkg/cryptox"
	"github.com/teyroberto/agenda/pkg/idx"
	"github.com/teyroberto/agenda/pkg/jwtx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

var (
	ErrDuplicateEmail     = errors.New("duplicate_email")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrUnknownUser        = errors.New("unknown_user")
)

// Session is the result of a successful authentication: a signed stateless
// token plus its lifetime. There is no server-side session record.
type Session struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// IdentityService owns user credentials and session tokens. Secret, issuer
// and TTL are injected at construction so tests can run with distinct
// values per case.
type IdentityService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	SessionTTL time.Duration
}

// Register creates a new user with a freshly hashed credential. It returns
// no token; the caller authenticates separately.
func (s *IdentityService) Register(ctx context.Context, email, displayName, password string) (domain.User, error) {
	email = strings.TrimSpace(email)

	// Hashing is deliberately slow, so it happens before the transaction
	// opens rather than while holding it.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			// The unique index catches a registration that raced past the
			// lookup above.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Authenticate verifies the credentials and issues a signed session token.
// A missing user and a wrong password both return ErrInvalidCredentials so
// the response never reveals which part was wrong.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("password verification failed", slog.String("user_id", user.ID))
		return Session{}, ErrInvalidCredentials
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(user.Email, user.DisplayName, s.Issuer, ttl, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	return Session{AccessToken: token, ExpiresIn: ttl}, nil
}

// ValidateToken resolves a bearer token to the user it was issued for.
// Signature, expiry and subject problems yield ErrInvalidToken; a token
// whose subject no longer maps to a stored user yields ErrUnknownUser.
func (s *IdentityService) ValidateToken(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return s.ResolveSubject(ctx, claims.Subject)
}

// ResolveSubject maps an already-verified token subject to its stored
// user. The lookup must exist even though users aren't deletable here: a
// subject with no matching record fails closed with ErrUnknownUser.
func (s *IdentityService) ResolveSubject(ctx context.Context, subject string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnknownUser
		}
		return domain.User{}, err
	}

	return user, nil
}
