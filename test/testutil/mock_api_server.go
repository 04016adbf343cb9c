package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	httpdomain "momfit.app/cli/internal/core/domain/http"
)

// RefreshCookieName is the httpOnly cookie the mock backend issues on login.
const RefreshCookieName = "refreshToken"

// The refresh cookie is scoped to the auth routes and outlives the process.
const (
	RefreshCookiePath   = "/auth"
	RefreshCookieMaxAge = 7 * 24 * 60 * 60
)

// MockAPIServer is a fake momfit backend: it issues and rotates access tokens,
// guards registered routes with bearer auth and records every request.
type MockAPIServer struct {
	*httptest.Server
	Config     MockAPIConfig
	RequestLog []RequestInfo
	mu         sync.Mutex

	validTokens  map[string]bool
	refreshCalls int
	issued       int
}

// MockAPIConfig contains all configuration options for the mock server
type MockAPIConfig struct {
	// Users maps login emails to passwords.
	Users map[string]string

	// LoginToken is the access token returned by /auth/login.
	LoginToken string

	// RefreshTokens are handed out by successive /auth/refresh calls; the
	// last one repeats once exhausted.
	RefreshTokens []string

	// RefreshStatus, when non-zero, makes /auth/refresh fail with it.
	RefreshStatus int

	// RefreshCookie is the value of the session cookie set on login.
	RefreshCookie string

	// RefreshDelay holds /auth/refresh open to widen the window in which
	// concurrent callers can pile up.
	RefreshDelay time.Duration

	ResponseDelay time.Duration

	// ValidTokens are accepted by protected routes from the start.
	ValidTokens []string

	routes []route
}

type route struct {
	method    string
	path      string
	protected bool
	handler   http.HandlerFunc
}

// RequestInfo captures information about each request for test assertions
type RequestInfo struct {
	Method      string
	Path        string
	Headers     http.Header
	Body        []byte
	Timestamp   time.Time
	QueryParams map[string][]string
}

// MockAPIServerBuilder provides a fluent interface for configuring the mock server
type MockAPIServerBuilder struct {
	t      testing.TB
	config MockAPIConfig
}

// NewMockAPIServer creates a new mock API server builder
func NewMockAPIServer(t testing.TB) *MockAPIServerBuilder {
	return &MockAPIServerBuilder{
		t: t,
		config: MockAPIConfig{
			Users:         map[string]string{"mom@example.com": "secret"},
			LoginToken:    "login-token",
			RefreshTokens: []string{"new-token"},
			RefreshCookie: "refresh-cookie",
		},
	}
}

// WithUser registers a login.
func (b *MockAPIServerBuilder) WithUser(email, password string) *MockAPIServerBuilder {
	b.config.Users[email] = password
	return b
}

// WithLoginToken sets the token returned on login.
func (b *MockAPIServerBuilder) WithLoginToken(token string) *MockAPIServerBuilder {
	b.config.LoginToken = token
	return b
}

// WithRefreshTokens sets the sequence of tokens returned by refresh.
func (b *MockAPIServerBuilder) WithRefreshTokens(tokens ...string) *MockAPIServerBuilder {
	b.config.RefreshTokens = tokens
	return b
}

// WithRefreshFailure makes every refresh answer status.
func (b *MockAPIServerBuilder) WithRefreshFailure(status int) *MockAPIServerBuilder {
	b.config.RefreshStatus = status
	return b
}

// WithRefreshDelay delays refresh responses.
func (b *MockAPIServerBuilder) WithRefreshDelay(d time.Duration) *MockAPIServerBuilder {
	b.config.RefreshDelay = d
	return b
}

// WithResponseDelay adds artificial delay to responses
func (b *MockAPIServerBuilder) WithResponseDelay(delay time.Duration) *MockAPIServerBuilder {
	b.config.ResponseDelay = delay
	return b
}

// WithValidTokens marks tokens as accepted from the start.
func (b *MockAPIServerBuilder) WithValidTokens(tokens ...string) *MockAPIServerBuilder {
	b.config.ValidTokens = append(b.config.ValidTokens, tokens...)
	return b
}

// WithProtectedRoute registers handler behind bearer authentication.
// path uses gorilla/mux syntax, e.g. /exercises/{id}.
func (b *MockAPIServerBuilder) WithProtectedRoute(method, path string, handler http.HandlerFunc) *MockAPIServerBuilder {
	b.config.routes = append(b.config.routes, route{method: method, path: path, protected: true, handler: handler})
	return b
}

// WithPublicRoute registers handler without authentication.
func (b *MockAPIServerBuilder) WithPublicRoute(method, path string, handler http.HandlerFunc) *MockAPIServerBuilder {
	b.config.routes = append(b.config.routes, route{method: method, path: path, handler: handler})
	return b
}

// Build creates the configured mock API server and registers its cleanup.
func (b *MockAPIServerBuilder) Build() *MockAPIServer {
	mock := &MockAPIServer{
		Config:      b.config,
		RequestLog:  []RequestInfo{},
		validTokens: map[string]bool{},
	}
	for _, tok := range b.config.ValidTokens {
		mock.validTokens[tok] = true
	}

	r := mux.NewRouter()
	r.Use(mock.logMiddleware)
	r.HandleFunc(httpdomain.LoginPath, mock.handleLogin).Methods(http.MethodPost)
	r.HandleFunc(httpdomain.SignupPath, mock.handleSignup).Methods(http.MethodPost)
	r.HandleFunc(httpdomain.RefreshPath, mock.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc(httpdomain.LogoutPath, mock.handleLogout).Methods(http.MethodPost)
	for _, rt := range b.config.routes {
		h := rt.handler
		if rt.protected {
			h = mock.requireBearer(h)
		}
		r.HandleFunc(rt.path, h).Methods(rt.method)
	}

	mock.Server = httptest.NewServer(r)
	b.t.Cleanup(mock.Close)
	return mock
}

func (m *MockAPIServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.logRequest(r)
		if m.Config.ResponseDelay > 0 {
			time.Sleep(m.Config.ResponseDelay)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *MockAPIServer) logRequest(r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestLog = append(m.RequestLog, RequestInfo{
		Method:      r.Method,
		Path:        r.URL.Path,
		Headers:     r.Header.Clone(),
		Body:        body,
		Timestamp:   time.Now(),
		QueryParams: r.URL.Query(),
	})
}

func (m *MockAPIServer) requireBearer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		m.mu.Lock()
		ok := token != "" && m.validTokens[token]
		m.mu.Unlock()
		if !ok {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "access token expired"})
			return
		}
		next(w, r)
	}
}

func (m *MockAPIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	m.mu.Lock()
	pw, ok := m.Config.Users[req.Email]
	m.mu.Unlock()
	if !ok || pw != req.Password {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}

	m.mu.Lock()
	m.validTokens[m.Config.LoginToken] = true
	cookie := m.Config.RefreshCookie
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: RefreshCookieName, Value: cookie, Path: RefreshCookiePath, MaxAge: RefreshCookieMaxAge, HttpOnly: true})
	WriteJSON(w, http.StatusOK, map[string]string{"accessToken": m.Config.LoginToken})
}

func (m *MockAPIServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		BirthDate string `json:"birth_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "email is required"})
		return
	}
	m.mu.Lock()
	m.Config.Users[req.Email] = req.Password
	m.mu.Unlock()
	WriteJSON(w, http.StatusCreated, map[string]string{"message": "signed up"})
}

func (m *MockAPIServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.refreshCalls++
	m.mu.Unlock()

	if m.Config.RefreshDelay > 0 {
		time.Sleep(m.Config.RefreshDelay)
	}
	if m.Config.RefreshStatus != 0 {
		WriteJSON(w, m.Config.RefreshStatus, map[string]string{"message": "refresh rejected"})
		return
	}
	m.mu.Lock()
	want := m.Config.RefreshCookie
	m.mu.Unlock()
	if c, err := r.Cookie(RefreshCookieName); err != nil || c.Value != want {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing refresh token"})
		return
	}

	m.mu.Lock()
	token := m.Config.RefreshTokens[min(m.issued, len(m.Config.RefreshTokens)-1)]
	m.issued++
	m.validTokens[token] = true
	m.mu.Unlock()

	WriteJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

func (m *MockAPIServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: RefreshCookieName, Value: "", Path: RefreshCookiePath, MaxAge: -1})
	WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Utility methods for test assertions

// SetRefreshCookie installs the session cookie on jar as if login happened.
func (m *MockAPIServer) SetRefreshCookie(jar http.CookieJar) {
	u := mustParse(m.URL + "/")
	jar.SetCookies(u, []*http.Cookie{{Name: RefreshCookieName, Value: m.Config.RefreshCookie, Path: RefreshCookiePath, MaxAge: RefreshCookieMaxAge}})
}

// RotateRefreshCookie changes the cookie value the server accepts, as if the
// session was ended from another device.
func (m *MockAPIServer) RotateRefreshCookie(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Config.RefreshCookie = value
}

// Revoke stops accepting token, simulating its expiry.
func (m *MockAPIServer) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.validTokens, token)
}

// RefreshCount returns how many times /auth/refresh was called.
func (m *MockAPIServer) RefreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshCalls
}

// GetRequestCount returns the number of requests made to a specific path
func (m *MockAPIServer) GetRequestCount(path string) int {
	return len(m.RequestsTo(path))
}

// RequestsTo returns the logged requests for path in arrival order.
func (m *MockAPIServer) RequestsTo(path string) []RequestInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []RequestInfo
	for _, req := range m.RequestLog {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// LastRequest returns the most recent request to path.
func (m *MockAPIServer) LastRequest(path string) (RequestInfo, bool) {
	reqs := m.RequestsTo(path)
	if len(reqs) == 0 {
		return RequestInfo{}, false
	}
	return reqs[len(reqs)-1], true
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StaticJSON returns a handler that always answers status with v.
func StaticJSON(status int, v interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, v)
	}
}

// NoContent returns a handler answering 204.
func NoContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// Echo answers 200 with the decoded request body and the mux route vars.
func Echo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body interface{}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"body":  body,
			"vars":  mux.Vars(r),
			"query": r.URL.Query(),
		})
	}
}
