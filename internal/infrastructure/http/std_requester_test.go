package httpinfra

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	"momfit.app/cli/test/testutil"
)

// refreshOn401 mirrors the production policy without importing it.
type refreshOn401 struct{}

func (refreshOn401) NeedsRefresh(req httpdomain.RequestContext, status int) bool {
	return status == http.StatusUnauthorized && !req.Retried && req.Path != httpdomain.RefreshPath
}

func newRequester() *StdHttpRequester {
	return NewStdHttpRequester(5*time.Second, nil, refreshOn401{}, nil)
}

func TestStdHttpRequester_PostWithoutCredential(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithPublicRoute(http.MethodPost, "/things", testutil.StaticJSON(http.StatusCreated, map[string]int{"id": 7})).
		Build()

	endpoint := httpdomain.BackendEndpoint{BaseURL: server.URL, UserAgent: "momfit-test"}
	out, err := newRequester().Do(context.Background(), endpoint, httpdomain.RequestContext{
		Method: http.MethodPost,
		Path:   "/things",
		Body:   map[string]int{"a": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, httpdomain.OutcomeOK, out.Kind)
	assert.JSONEq(t, `{"id":7}`, string(out.Body))

	req, ok := server.LastRequest("/things")
	require.True(t, ok)
	assert.Empty(t, req.Headers.Get("Authorization"))
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, string(req.Body))
	assert.Equal(t, "momfit-test", req.Headers.Get("User-Agent"))
	assert.NotEmpty(t, req.Headers.Get(RequestIDHeader))
}

func TestStdHttpRequester_GetOmitsBodyAndSendsBearer(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithValidTokens("tok").
		WithProtectedRoute(http.MethodGet, "/pregnancy/me", testutil.StaticJSON(http.StatusOK, map[string]bool{"ok": true})).
		Build()

	out, err := newRequester().Do(context.Background(), httpdomain.BackendEndpoint{BaseURL: server.URL}, httpdomain.RequestContext{
		Method: http.MethodGet,
		Path:   "/pregnancy/me",
		Bearer: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, httpdomain.OutcomeOK, out.Kind)

	req, _ := server.LastRequest("/pregnancy/me")
	assert.Equal(t, "Bearer tok", req.Headers.Get("Authorization"))
	assert.Empty(t, req.Headers.Get("Content-Type"))
	assert.Empty(t, req.Body)
}

func TestStdHttpRequester_OverridesCannotReplaceAuthorization(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithPublicRoute(http.MethodPut, "/x", testutil.StaticJSON(http.StatusOK, map[string]string{})).
		Build()

	_, err := newRequester().Do(context.Background(), httpdomain.BackendEndpoint{BaseURL: server.URL, UserAgent: "default"}, httpdomain.RequestContext{
		Method: http.MethodPut,
		Path:   "/x",
		Body:   []int{1},
		Bearer: "real",
		Headers: map[string]string{
			"authorization": "Bearer spoofed",
			"Content-Type":  "text/plain",
			"user-agent":    "custom",
			"X-Trace":       "abc",
		},
	})
	require.NoError(t, err)

	req, _ := server.LastRequest("/x")
	assert.Equal(t, "Bearer real", req.Headers.Get("Authorization"))
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
	assert.Equal(t, "custom", req.Headers.Get("User-Agent"))
	assert.Equal(t, "abc", req.Headers.Get("X-Trace"))
}

func TestStdHttpRequester_Classification(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithPublicRoute(http.MethodDelete, "/gone", testutil.NoContent()).
		WithPublicRoute(http.MethodGet, "/null", testutil.StaticJSON(http.StatusOK, nil)).
		WithPublicRoute(http.MethodGet, "/bad", testutil.StaticJSON(http.StatusBadRequest, map[string]string{"message": "height is required"})).
		WithPublicRoute(http.MethodGet, "/plain", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>oops</html>"))
		}).
		WithPublicRoute(http.MethodGet, "/html", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>ok</html>"))
		}).
		WithProtectedRoute(http.MethodGet, "/private", testutil.StaticJSON(http.StatusOK, nil)).
		Build()
	endpoint := httpdomain.BackendEndpoint{BaseURL: server.URL}
	r := newRequester()

	do := func(method, path string, retried bool) (httpdomain.Outcome, error) {
		return r.Do(context.Background(), endpoint, httpdomain.RequestContext{Method: method, Path: path, Retried: retried})
	}

	t.Run("204 is no content", func(t *testing.T) {
		out, err := do(http.MethodDelete, "/gone", false)
		require.NoError(t, err)
		assert.Equal(t, httpdomain.OutcomeNoContent, out.Kind)

		body, err := out.Result()
		require.NoError(t, err)
		assert.True(t, body.NoContent())
	})

	t.Run("json null is a body", func(t *testing.T) {
		out, err := do(http.MethodGet, "/null", false)
		require.NoError(t, err)
		body, err := out.Result()
		require.NoError(t, err)
		assert.False(t, body.NoContent())
		assert.True(t, body.IsNull())
	})

	t.Run("server message extracted", func(t *testing.T) {
		out, err := do(http.MethodGet, "/bad", false)
		require.NoError(t, err)
		assert.Equal(t, httpdomain.OutcomeFailed, out.Kind)
		assert.Equal(t, http.StatusBadRequest, out.Err.Status)
		assert.Equal(t, "height is required", out.Err.Message)
	})

	t.Run("generic message when body is not json", func(t *testing.T) {
		out, err := do(http.MethodGet, "/plain", false)
		require.NoError(t, err)
		assert.Equal(t, "HTTP 500", out.Err.Message)
	})

	t.Run("malformed 2xx body is an error", func(t *testing.T) {
		_, err := do(http.MethodGet, "/html", false)
		assert.ErrorIs(t, err, httpdomain.ErrMalformedResponse)
	})

	t.Run("first 401 needs refresh", func(t *testing.T) {
		out, err := do(http.MethodGet, "/private", false)
		require.NoError(t, err)
		assert.Equal(t, httpdomain.OutcomeNeedsRefresh, out.Kind)
		assert.Equal(t, http.StatusUnauthorized, out.Err.Status)
	})

	t.Run("retried 401 fails", func(t *testing.T) {
		out, err := do(http.MethodGet, "/private", true)
		require.NoError(t, err)
		assert.Equal(t, httpdomain.OutcomeFailed, out.Kind)
	})

	t.Run("401 on refresh path fails", func(t *testing.T) {
		out, err := do(http.MethodPost, httpdomain.RefreshPath, false)
		require.NoError(t, err)
		assert.Equal(t, httpdomain.OutcomeFailed, out.Kind)
		assert.Equal(t, http.StatusUnauthorized, out.Err.Status)
	})
}

func TestStdHttpRequester_NetworkErrorKeepsCause(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newRequester().Do(context.Background(), httpdomain.BackendEndpoint{BaseURL: url}, httpdomain.RequestContext{
		Method: http.MethodGet,
		Path:   "/anything",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestStdHttpRequester_UnmarshalableBody(t *testing.T) {
	_, err := newRequester().Do(context.Background(), httpdomain.BackendEndpoint{BaseURL: "http://127.0.0.1:1"}, httpdomain.RequestContext{
		Method: http.MethodPost,
		Path:   "/x",
		Body:   map[string]interface{}{"ch": make(chan int)},
	})
	var unsupported *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, path string
		query      map[string]string
		want       string
	}{
		{"https://api.momfit.app", "/exercises", nil, "https://api.momfit.app/exercises"},
		{"https://api.momfit.app/", "exercises", nil, "https://api.momfit.app/exercises"},
		{"https://api.momfit.app/v1", "/exercises?category=yoga", nil, "https://api.momfit.app/v1/exercises?category=yoga"},
		{"https://api.momfit.app", "/exercises", map[string]string{"difficulty": "beginner"}, "https://api.momfit.app/exercises?difficulty=beginner"},
	}
	for _, tt := range tests {
		got, err := joinURL(tt.base, tt.path, tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := joinURL("not-absolute", "/x", nil)
	assert.Error(t, err)
}
