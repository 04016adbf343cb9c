package httpports

import (
	"context"

	httpdomain "momfit.app/cli/internal/core/domain/http"
)

// HttpRequester performs exactly one network attempt and classifies it.
// A returned error means no classified outcome exists: transport failure,
// unserializable body or a malformed 2xx payload.
type HttpRequester interface {
	Do(ctx context.Context, endpoint httpdomain.BackendEndpoint, req httpdomain.RequestContext) (httpdomain.Outcome, error)
}

// RetryPolicy decides whether a 401 is eligible for the refresh-and-retry
// protocol instead of being surfaced directly.
type RetryPolicy interface {
	NeedsRefresh(req httpdomain.RequestContext, status int) bool
}

// CredentialSource hands out the current credential for an attempt.
type CredentialSource interface {
	Credential() httpdomain.Credential
}

// TokenRefresher obtains a new access token after stale was rejected.
type TokenRefresher interface {
	Refresh(ctx context.Context, stale httpdomain.Credential) (string, error)
}
