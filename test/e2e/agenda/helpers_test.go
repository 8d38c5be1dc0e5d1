package agenda_test

import (
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/teyroberto/agenda/internal/agenda/http"
	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/internal/agenda/store/drivers/sqlite"
	"github.com/teyroberto/agenda/pkg/agendasdk"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/jwtx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

/*
 * Common constants and helper functions for agenda service end-to-end
 * tests. The full HTTP stack runs in-process against a throwaway SQLite
 * file, driven through the agendasdk client.
 */

const (
	testIssuer = "agenda-e2e"
	testSecret = "e2e-signing-secret-0123456789"

	aliceEmail    = "alice@example.com"
	aliceName     = "Alice"
	alicePassword = "alice-password"
)

// testServer bundles the running HTTP server with the pieces tests need
// to mint tokens out of band.
type testServer struct {
	URL    string
	Client *agendasdk.Client
	Signer jwtx.Signer
}

// setupServer wires the full application stack (router, services, store)
// onto an httptest server backed by a fresh database file. The server and
// store are torn down with the test.
func setupServer(t *testing.T) *testServer {
	t.Helper()

	dbFile := filepath.Join(t.TempDir(), "agenda-e2e.db")
	st, err := sqlite.NewStore(fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbFile))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), testIssuer)
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{
		Service: "agenda-service",
		Version: "e2e",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	router := httpapi.NewRouter(
		verifier,
		"e2e",
		httpx.CORSConfig{AllowedOrigins: []string{"*"}},
		st,
		logger,
	)
	router.IdentityService = &service.IdentityService{
		Store:      st,
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     testIssuer,
		SessionTTL: jwtx.DefaultSessionTTL,
	}
	router.ContactsService = &service.ContactsService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: agendasdk.NewClient(srv.URL),
		Signer: signer,
	}
}

// registerAndLogin creates an account and returns an authenticated session.
func registerAndLogin(t *testing.T, ts *testServer, email, displayName, password string) *agendasdk.Session {
	t.Helper()
	ctx := t.Context()

	_, err := ts.Client.Register(ctx, email, displayName, password)
	require.NoError(t, err)

	session, err := ts.Client.Login(ctx, email, password)
	require.NoError(t, err)
	return session
}

// mintToken signs a session token directly, bypassing the login endpoint,
// so tests can produce expired tokens and tokens for deleted subjects.
func mintToken(t *testing.T, ts *testServer, subject string, ttl time.Duration) string {
	t.Helper()

	claims := jwtx.NewSessionClaims(subject, "E2E", testIssuer, ttl, time.Now())
	token, err := ts.Signer.Sign(claims)
	require.NoError(t, err)
	return token
}

// requireAPIError asserts err is an *agendasdk.APIError with the given
// status and stable error code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	require.Error(t, err)
	var apiErr *agendasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
