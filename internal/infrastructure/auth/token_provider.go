package authinfra

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"momfit.app/cli/internal/auth"
	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

// HTTPTokenProvider obtains access tokens from the backend's refresh
// endpoint. The refresh cookie travels in the requester's cookie jar.
type HTTPTokenProvider struct {
	requester httpports.HttpRequester
	endpoint  httpdomain.BackendEndpoint
	logger    hclog.Logger
}

// NewHTTPTokenProvider creates a provider that refreshes against endpoint.
func NewHTTPTokenProvider(requester httpports.HttpRequester, endpoint httpdomain.BackendEndpoint, logger hclog.Logger) *HTTPTokenProvider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HTTPTokenProvider{requester: requester, endpoint: endpoint, logger: logger}
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Refresh calls POST /auth/refresh. The attempt is marked as retried and
// carries no bearer, so a 401 here surfaces as a failure and never recurses
// into another refresh.
func (p *HTTPTokenProvider) Refresh(ctx context.Context) (string, error) {
	outcome, err := p.requester.Do(ctx, p.endpoint, httpdomain.RequestContext{
		Method:  httpdomain.MethodPost,
		Path:    httpdomain.RefreshPath,
		Retried: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call refresh endpoint: %w", err)
	}

	body, err := outcome.Result()
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := body.Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("refresh response has no access token: %w", httpdomain.ErrMalformedResponse)
	}

	p.logger.Debug("received access token from refresh endpoint")
	return resp.AccessToken, nil
}

var _ auth.TokenProvider = (*HTTPTokenProvider)(nil)
