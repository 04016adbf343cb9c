package di

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configdomain "momfit.app/cli/internal/core/domain/config"
	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpinfra "momfit.app/cli/internal/infrastructure/http"
	"momfit.app/cli/test/testutil"
)

func testConfig(t *testing.T, endpoint string) *configdomain.Config {
	t.Helper()
	cfg := configdomain.Default()
	cfg.APIEndpoint = endpoint
	cfg.StateDir = t.TempDir()
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	container, err := NewContainer(cfg, hclog.NewNullLogger())
	require.NoError(t, err)

	assert.NotNil(t, container.Client)
	assert.NotNil(t, container.Auth)
	assert.NotNil(t, container.Workouts)
	assert.Equal(t, cfg.APIEndpoint, container.Client.Endpoint().BaseURL)
	assert.Equal(t, filepath.Join(cfg.StateDir, httpinfra.CookieFileName), container.Cookies.Path())
}

func TestContainer_SessionSurvivesRestart(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithRefreshTokens("restored").
		WithProtectedRoute(http.MethodGet, "/pregnancy/me", testutil.StaticJSON(http.StatusOK, map[string]int{"pregnancy_id": 1})).
		Build()
	cfg := testConfig(t, server.URL)
	ctx := context.Background()

	first, err := NewContainer(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	require.NoError(t, first.Auth.Login(ctx, "mom@example.com", "secret"))
	require.NoError(t, first.Shutdown(ctx))

	info, err := os.Stat(first.Cookies.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A new process starts without an access token and recovers through a refresh.
	second, err := NewContainer(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.False(t, second.Session.Credential().Present())

	_, err = second.Pregnancy.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "restored", second.Session.AccessToken())
	assert.Equal(t, 1, server.RefreshCount())
}

func TestContainer_FailedRefreshLogsOut(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodGet, "/exercises", testutil.StaticJSON(http.StatusOK, []string{})).
		Build()
	cfg := testConfig(t, server.URL)

	container, err := NewContainer(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	container.Session.SetCredential("stale")

	_, err = container.Client.Fetch(context.Background(), "/exercises")

	assert.Equal(t, http.StatusUnauthorized, httpdomain.StatusCode(err))
	assert.Equal(t, 1, server.GetRequestCount(httpdomain.LogoutPath))
	assert.False(t, container.Session.Credential().Present())
}
