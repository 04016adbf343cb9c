package httpdomain

// BackendEndpoint describes the single backend target used by the CLI.
type BackendEndpoint struct {
	BaseURL   string
	UserAgent string
}

// Service-relative paths of the authentication endpoints.
const (
	LoginPath   = "/auth/login"
	SignupPath  = "/auth/signup"
	RefreshPath = "/auth/refresh"
	LogoutPath  = "/auth/logout"
)
