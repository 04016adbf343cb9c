package apphttp

import (
	"net/http"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

// exemptPaths never take part in refresh-and-retry. A 401 from refresh means
// the session is gone, from logout it would recurse through the failure
// handler, and from login it means bad credentials.
var exemptPaths = map[string]bool{
	httpdomain.RefreshPath: true,
	httpdomain.LogoutPath:  true,
	httpdomain.LoginPath:   true,
}

// RefreshOnceRetryPolicy allows one refresh per request, on a 401 from any
// path except /auth/refresh, /auth/logout and /auth/login. Logout is exempt
// because the failure handler calls it, and a 401 on login means wrong
// credentials rather than an expired token.
type RefreshOnceRetryPolicy struct{}

func NewRetryPolicy() RefreshOnceRetryPolicy {
	return RefreshOnceRetryPolicy{}
}

func (RefreshOnceRetryPolicy) NeedsRefresh(req httpdomain.RequestContext, status int) bool {
	return status == http.StatusUnauthorized && !req.Retried && !exemptPaths[pathOnly(req.Path)]
}

func pathOnly(p string) string {
	for i := 0; i < len(p); i++ {
		if p[i] == '?' || p[i] == '#' {
			return p[:i]
		}
	}
	return p
}

var _ httpports.RetryPolicy = RefreshOnceRetryPolicy{}
