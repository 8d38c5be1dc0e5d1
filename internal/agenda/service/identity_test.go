package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teyroberto/agenda/internal/agenda/store/drivers/sqlite"
	"github.com/teyroberto/agenda/pkg/cryptox"
	"github.com/teyroberto/agenda/pkg/jwtx"
)

const testIssuer = "agenda-test"

func newIdentityService(t *testing.T, secret string, ttl time.Duration) *IdentityService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), testIssuer)
	require.NoError(t, err)

	return &IdentityService{
		Store:      st,
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     testIssuer,
		SessionTTL: ttl,
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "register-secret", 30*time.Minute)

	user, err := svc.Register(ctx, "ana@example.com", "Ana", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, "Ana", user.DisplayName)
	require.NotEqual(t, "secret1", user.PasswordHash)

	session, err := svc.Authenticate(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, 30*time.Minute, session.ExpiresIn)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "dup-secret", time.Minute)

	_, err := svc.Register(ctx, "dup@example.com", "First", "secret1")
	require.NoError(t, err)

	// The second attempt fails regardless of the password used.
	_, err = svc.Register(ctx, "dup@example.com", "Second", "another-password")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(ctx, "dup@example.com", "Third", "secret1")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "policy-secret", time.Minute)

	_, err := svc.Register(ctx, "short@example.com", "Short", "five5"[:5])
	require.ErrorIs(t, err, cryptox.ErrPasswordTooShort)

	// Over-length passwords are truncated, not rejected: the first 72
	// bytes are the effective credential.
	long := strings.Repeat("p", 80)
	_, err = svc.Register(ctx, "long@example.com", "Long", long)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "long@example.com", long[:cryptox.MaxPasswordLength])
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "long@example.com", long[:cryptox.MaxPasswordLength]+"different tail")
	require.NoError(t, err)
}

func TestAuthenticateHidesWhichPartFailed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "hide-secret", time.Minute)

	_, err := svc.Register(ctx, "ana@example.com", "Ana", "secret1")
	require.NoError(t, err)

	_, errWrongPassword := svc.Authenticate(ctx, "ana@example.com", "wrong-password")
	_, errUnknownEmail := svc.Authenticate(ctx, "nobody@example.com", "secret1")

	require.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	// Identical error values, nothing to tell the two cases apart.
	require.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestValidateTokenResolvesSameUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "validate-secret", 15*time.Minute)

	registered, err := svc.Register(ctx, "ana@example.com", "Ana", "secret1")
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	resolved, err := svc.ValidateToken(ctx, session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, resolved.ID)
	require.Equal(t, registered.Email, resolved.Email)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "expired-secret", time.Minute)

	_, err := svc.Register(ctx, "ana@example.com", "Ana", "secret1")
	require.NoError(t, err)

	// Sign a token that expired an hour ago with the same secret.
	claims := jwtx.NewSessionClaims("ana@example.com", "Ana", testIssuer, time.Minute, time.Now().UTC().Add(-time.Hour))
	expired, err := svc.Signer.Sign(claims)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, expired)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "home-secret", time.Minute)

	_, err := svc.Register(ctx, "ana@example.com", "Ana", "secret1")
	require.NoError(t, err)

	foreignSigner, err := jwtx.NewSignerHS256([]byte("foreign-secret"))
	require.NoError(t, err)
	forged, err := foreignSigner.Sign(
		jwtx.NewSessionClaims("ana@example.com", "Ana", testIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, forged)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsVanishedSubject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "ghost-secret", time.Minute)

	// A structurally valid token whose subject was never registered, the
	// defensive deleted-between-issuance-and-use case.
	ghost, err := svc.Signer.Sign(
		jwtx.NewSessionClaims("ghost@example.com", "Ghost", testIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, ghost)
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newIdentityService(t, "garbage-secret", time.Minute)

	_, err := svc.ValidateToken(ctx, "definitely-not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
