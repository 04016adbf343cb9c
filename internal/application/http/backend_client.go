package apphttp

import (
	"context"

	"github.com/hashicorp/go-hclog"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

// BackendClient is the authenticated JSON client for the momfit API. Every
// call attaches the session's access token and, when the backend rejects it
// as expired, renews it once and replays the call.
type BackendClient struct {
	endpoint    httpdomain.BackendEndpoint
	requester   httpports.HttpRequester
	credentials httpports.CredentialSource
	refresher   httpports.TokenRefresher
	logger      hclog.Logger
}

func NewBackendClient(
	endpoint httpdomain.BackendEndpoint,
	requester httpports.HttpRequester,
	credentials httpports.CredentialSource,
	refresher httpports.TokenRefresher,
	logger hclog.Logger,
) *BackendClient {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &BackendClient{
		endpoint:    endpoint,
		requester:   requester,
		credentials: credentials,
		refresher:   refresher,
		logger:      logger,
	}
}

// Endpoint returns the backend this client talks to.
func (c *BackendClient) Endpoint() httpdomain.BackendEndpoint {
	return c.endpoint
}

// Fetch issues a GET.
func (c *BackendClient) Fetch(ctx context.Context, path string) (httpdomain.Body, error) {
	return c.Do(ctx, httpdomain.RequestContext{Method: httpdomain.MethodGet, Path: path})
}

// Query issues a GET with query parameters.
func (c *BackendClient) Query(ctx context.Context, path string, query map[string]string) (httpdomain.Body, error) {
	return c.Do(ctx, httpdomain.RequestContext{Method: httpdomain.MethodGet, Path: path, Query: query})
}

// Create issues a POST. A nil body sends no payload.
func (c *BackendClient) Create(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return c.Do(ctx, httpdomain.RequestContext{Method: httpdomain.MethodPost, Path: path, Body: body})
}

// Replace issues a PUT.
func (c *BackendClient) Replace(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return c.Do(ctx, httpdomain.RequestContext{Method: httpdomain.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH.
func (c *BackendClient) Patch(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return c.Do(ctx, httpdomain.RequestContext{Method: httpdomain.MethodPatch, Path: path, Body: body})
}

// Remove issues a DELETE. A nil body sends no payload.
func (c *BackendClient) Remove(ctx context.Context, path string, body interface{}) (httpdomain.Body, error) {
	return c.Do(ctx, httpdomain.RequestContext{Method: httpdomain.MethodDelete, Path: path, Body: body})
}

// Do runs req with the current access token. Bearer and Retried on req are
// ignored; they are set per attempt.
func (c *BackendClient) Do(ctx context.Context, req httpdomain.RequestContext) (httpdomain.Body, error) {
	snapshot := c.credentials.Credential()

	first := req
	first.Bearer = snapshot.Token
	first.Retried = false

	outcome, err := c.requester.Do(ctx, c.endpoint, first)
	if err != nil {
		return httpdomain.Body{}, err
	}
	if outcome.Kind != httpdomain.OutcomeNeedsRefresh {
		return outcome.Result()
	}

	c.logger.Debug("access token rejected, refreshing", "method", req.Method, "path", req.Path)
	token, err := c.refresher.Refresh(ctx, snapshot)
	if err != nil {
		if ctx.Err() != nil {
			return httpdomain.Body{}, err
		}
		return httpdomain.Body{}, refreshError(outcome.Err, err)
	}

	retry := req
	retry.Bearer = token
	retry.Retried = true

	outcome, err = c.requester.Do(ctx, c.endpoint, retry)
	if err != nil {
		return httpdomain.Body{}, err
	}
	return outcome.Result()
}

// refreshError reports the original 401 with the refresh failure as its
// cause, so both the status and the refresh sentinel stay visible.
func refreshError(original *httpdomain.Error, cause error) error {
	if original == nil {
		return cause
	}
	wrapped := *original
	wrapped.Cause = cause
	return &wrapped
}
