package ports

import (
	"context"

	httpdomain "momfit.app/cli/internal/core/domain/http"
)

// APIGateway is the authenticated JSON surface of the momfit backend.
// Implementations attach the session credential and renew it transparently.
type APIGateway interface {
	// Fetch issues a GET
	Fetch(ctx context.Context, path string) (httpdomain.Body, error)

	// Query issues a GET with query parameters
	Query(ctx context.Context, path string, query map[string]string) (httpdomain.Body, error)

	// Create issues a POST; body may be nil
	Create(ctx context.Context, path string, body interface{}) (httpdomain.Body, error)

	// Replace issues a PUT
	Replace(ctx context.Context, path string, body interface{}) (httpdomain.Body, error)

	// Patch issues a PATCH
	Patch(ctx context.Context, path string, body interface{}) (httpdomain.Body, error)

	// Remove issues a DELETE; body may be nil
	Remove(ctx context.Context, path string, body interface{}) (httpdomain.Body, error)

	// Do runs a request that needs extra headers or an explicit method
	Do(ctx context.Context, req httpdomain.RequestContext) (httpdomain.Body, error)
}

// CredentialStore is the part of the session the application layer uses.
type CredentialStore interface {
	Credential() httpdomain.Credential
	SetCredential(token string)
	Clear()
}
