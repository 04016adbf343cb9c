package services

import (
	"context"
	"net/http/cookiejar"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apphttp "momfit.app/cli/internal/application/http"
	"momfit.app/cli/internal/auth"
	httpdomain "momfit.app/cli/internal/core/domain/http"
	authinfra "momfit.app/cli/internal/infrastructure/auth"
	httpinfra "momfit.app/cli/internal/infrastructure/http"
	"momfit.app/cli/test/testutil"
)

// testStack wires the real request pipeline against a mock backend.
type testStack struct {
	session *auth.Session
	client  *apphttp.BackendClient
	auth    *AuthService
}

func newTestStack(t *testing.T, server *testutil.MockAPIServer) *testStack {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	endpoint := httpdomain.BackendEndpoint{BaseURL: server.URL, UserAgent: "momfit-test"}
	requester := httpinfra.NewStdHttpRequester(5*time.Second, jar, apphttp.NewRetryPolicy(), nil)
	session := auth.NewSession(nil)
	coordinator := auth.NewCoordinator(session, authinfra.NewHTTPTokenProvider(requester, endpoint, nil), nil)
	client := apphttp.NewBackendClient(endpoint, requester, session, coordinator, nil)

	authService := NewAuthService(client, session, coordinator, nil)
	session.SetFailureHandler(authService.HandleAuthFailure)

	return &testStack{session: session, client: client, auth: authService}
}

// MockGateway is a testify mock of ports.APIGateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) result(args mock.Arguments) (httpdomain.Body, error) {
	body, _ := args.Get(0).(httpdomain.Body)
	return body, args.Error(1)
}

func (m *MockGateway) Fetch(ctx context.Context, path string) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, path))
}

func (m *MockGateway) Query(ctx context.Context, path string, query map[string]string) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, path, query))
}

func (m *MockGateway) Create(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, path, body))
}

func (m *MockGateway) Replace(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, path, body))
}

func (m *MockGateway) Patch(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, path, body))
}

func (m *MockGateway) Remove(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, path, body))
}

func (m *MockGateway) Do(ctx context.Context, req httpdomain.RequestContext) (httpdomain.Body, error) {
	return m.result(m.Called(ctx, req))
}
