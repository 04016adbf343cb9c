package auth

import "context"

// TokenProvider exchanges the ambient session cookie for a new access token.
type TokenProvider interface {
	Refresh(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func(ctx context.Context) (string, error)

func (f TokenProviderFunc) Refresh(ctx context.Context) (string, error) {
	return f(ctx)
}
