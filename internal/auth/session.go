package auth

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

// Session holds the process-wide access token and the handler run when a
// refresh fails. It is created once at startup and handed to the request
// pipeline; the token lives only in memory.
type Session struct {
	mu         sync.RWMutex
	token      string
	generation uint64
	onFailure  func()
	logger     hclog.Logger
}

func NewSession(logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Session{logger: logger}
}

// SetCredential replaces the access token. An empty token clears it.
func (s *Session) SetCredential(token string) {
	s.mu.Lock()
	s.token = token
	s.generation++
	s.mu.Unlock()
}

// Clear drops the access token.
func (s *Session) Clear() {
	s.SetCredential("")
}

// Credential returns the current token and its generation.
func (s *Session) Credential() httpdomain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return httpdomain.Credential{Token: s.token, Generation: s.generation}
}

// AccessToken returns the current token, empty when absent.
func (s *Session) AccessToken() string {
	return s.Credential().Token
}

// SetFailureHandler registers fn to run when a refresh fails, replacing any
// previous handler. A nil fn unregisters it.
func (s *Session) SetFailureHandler(fn func()) {
	s.mu.Lock()
	s.onFailure = fn
	s.mu.Unlock()
}

// NotifyAuthFailure runs the registered handler. A panicking handler is
// logged and otherwise ignored: forcing the logout must not break the
// request that discovered it.
func (s *Session) NotifyAuthFailure() {
	s.mu.RLock()
	fn := s.onFailure
	s.mu.RUnlock()
	if fn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("auth failure handler panicked", "panic", r)
		}
	}()
	fn()
}

var _ httpports.CredentialSource = (*Session)(nil)
