package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpinfra "momfit.app/cli/internal/infrastructure/http"
	"momfit.app/cli/test/testutil"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, server *testutil.MockAPIServer, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", server.URL}, args...)
	code := Run(context.Background(), full, &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func setupStateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MOMFIT_STATE_DIR", dir)
	return dir
}

func TestCLI_LoginPersistsSessionAcrossRuns(t *testing.T) {
	dir := setupStateDir(t)
	server := testutil.NewMockAPIServer(t).
		WithRefreshTokens("second-run-token").
		WithProtectedRoute(http.MethodGet, "/pregnancy/me", testutil.StaticJSON(http.StatusOK, map[string]interface{}{
			"pregnancy_id":  1,
			"due_date":      "2026-12-01",
			"fitness_level": "ACTIVE",
		})).
		Build()

	login := runCLI(t, server, "login", "--email", "mom@example.com", "--password", "secret")
	require.Equal(t, 0, login.code, login.stderr)
	assert.Contains(t, login.stdout, "Logged in as mom@example.com")
	assert.FileExists(t, filepath.Join(dir, httpinfra.CookieFileName))

	show := runCLI(t, server, "pregnancy", "show")
	require.Equal(t, 0, show.code, show.stderr)
	assert.Contains(t, show.stdout, "2026-12-01")
	assert.Equal(t, 1, server.RefreshCount())

	first, ok := server.LastRequest("/pregnancy/me")
	require.True(t, ok)
	assert.Equal(t, "Bearer second-run-token", first.Headers.Get("Authorization"))
}

func TestCLI_Status(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		setupStateDir(t)
		server := testutil.NewMockAPIServer(t).Build()

		res := runCLI(t, server, "status")
		assert.Equal(t, 0, res.code)
		assert.Contains(t, res.stdout, "Not logged in")
	})

	t.Run("decodes token claims", func(t *testing.T) {
		setupStateDir(t)
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "user-42",
			"email": "mom@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		server := testutil.NewMockAPIServer(t).WithRefreshTokens(token).Build()

		require.Equal(t, 0, runCLI(t, server, "login", "--email", "mom@example.com", "--password", "secret").code)
		res := runCLI(t, server, "status")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "user-42")
		assert.Contains(t, res.stdout, "mom@example.com")
		assert.NotContains(t, res.stdout, token)
	})
}

func TestCLI_ExpiredSessionForcesLogout(t *testing.T) {
	dir := setupStateDir(t)
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodGet, "/exercises", testutil.StaticJSON(http.StatusOK, []string{})).
		Build()

	require.Equal(t, 0, runCLI(t, server, "login", "--email", "mom@example.com", "--password", "secret").code)
	server.RotateRefreshCookie("rotated-elsewhere")

	res := runCLI(t, server, "exercises", "list")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "session has expired")
	assert.Equal(t, 1, server.GetRequestCount(httpdomain.LogoutPath))
	_, err := os.Stat(filepath.Join(dir, httpinfra.CookieFileName))
	assert.True(t, os.IsNotExist(err), "cookie file should be removed after forced logout")
}

func TestCLI_ConfigShow(t *testing.T) {
	setupStateDir(t)
	t.Setenv("MOMFIT_TIMEOUT", "45s")
	server := testutil.NewMockAPIServer(t).Build()

	res := runCLI(t, server, "config", "show")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "45s")
	assert.Contains(t, res.stdout, "env")
	assert.Contains(t, res.stdout, server.URL)
	assert.Contains(t, res.stdout, "command_line_flag")
}

func TestCLI_APICommand(t *testing.T) {
	setupStateDir(t)
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodPost, "/symptom", testutil.Echo()).
		WithProtectedRoute(http.MethodDelete, "/exercise-sessions/{id}", testutil.NoContent()).
		Build()
	require.Equal(t, 0, runCLI(t, server, "login", "--email", "mom@example.com", "--password", "secret").code)

	res := runCLI(t, server, "api", "post", "/symptom", "--data", `{"symptoms":["FATIGUE"]}`, "-H", "X-Trace=abc")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "FATIGUE")
	req, _ := server.LastRequest("/symptom")
	assert.Equal(t, "abc", req.Headers.Get("X-Trace"))

	res = runCLI(t, server, "api", "delete", "/exercise-sessions/3")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "(no content)")

	res = runCLI(t, server, "api", "head", "/symptom")
	assert.Equal(t, 1, res.code)
}

func TestCLI_InputValidation(t *testing.T) {
	setupStateDir(t)
	server := testutil.NewMockAPIServer(t).Build()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown symptom", []string{"symptoms", "submit", "hiccups"}},
		{"bad exercise id", []string{"exercises", "show", "abc"}},
		{"bad fitness level", []string{"pregnancy", "register", "--lmp", "2026-01-01", "--height", "160", "--weight", "50", "--fitness", "extreme"}},
		{"invalid api url", []string{"--api-url", "not-a-url", "config", "show"}},
		{"timeout out of range", []string{"--timeout", "10m", "config", "show"}},
		{"interactive with arguments", []string{"symptoms", "submit", "-i", "fatigue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, server, tt.args...)
			assert.Equal(t, 1, res.code)
			assert.NotEmpty(t, res.stderr)
		})
	}
	assert.Equal(t, 0, server.GetRequestCount("/symptom"))
}

func TestNewRootCommand_Commands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"login", "signup", "logout", "status", "pregnancy", "symptoms", "exercises", "workout", "api", "config"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
