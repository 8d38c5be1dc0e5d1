package agenda_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teyroberto/agenda/pkg/agendasdk"
)

func TestLivenessEndpoint(t *testing.T) {
	ts := setupServer(t)

	health, err := ts.Client.Livez(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Uptime)
	assert.NotEmpty(t, health.Version)
}

func TestReadinessEndpoint(t *testing.T) {
	ts := setupServer(t)

	resp, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health agendasdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	assert.Equal(t, "ok", health.Checks.Database)
}

func TestRootEndpoint(t *testing.T) {
	ts := setupServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var welcome agendasdk.WelcomeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&welcome))
	assert.Equal(t, "online", welcome.Status)
	assert.Contains(t, welcome.Links, "docs")
}
