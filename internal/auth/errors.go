package auth

import "errors"

var (
	// ErrRefreshFailed is returned to every caller waiting on a failed
	// credential refresh. The underlying cause is wrapped alongside it.
	ErrRefreshFailed = errors.New("access token refresh failed")

	// ErrNotAuthenticated is returned when an operation needs a credential
	// and none is held.
	ErrNotAuthenticated = errors.New("not authenticated")
)
