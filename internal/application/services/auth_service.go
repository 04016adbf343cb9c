package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"momfit.app/cli/internal/application/ports"
	"momfit.app/cli/internal/auth"
	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

// logoutTimeout bounds the best-effort logout run after a failed refresh.
const logoutTimeout = 5 * time.Second

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message,omitempty"`
}

// AuthService drives login, signup and logout against the backend and keeps
// the session credential in step with them.
type AuthService struct {
	api       ports.APIGateway
	store     ports.CredentialStore
	refresher httpports.TokenRefresher
	logger    hclog.Logger
}

func NewAuthService(api ports.APIGateway, store ports.CredentialStore, refresher httpports.TokenRefresher, logger hclog.Logger) *AuthService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AuthService{api: api, store: store, refresher: refresher, logger: logger}
}

// Login exchanges email and password for an access token. The backend also
// sets the session cookie used by later refreshes.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	body, err := s.api.Create(ctx, httpdomain.LoginPath, loginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	var resp tokenResponse
	if err := body.Decode(&resp); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login response has no access token: %w", httpdomain.ErrMalformedResponse)
	}

	s.store.SetCredential(resp.AccessToken)
	s.logger.Info("logged in", "email", email)
	return nil
}

// Signup creates an account and returns the server's message, if any.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	if req.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", req.BirthDate); err != nil {
			return "", fmt.Errorf("birth date must be YYYY-MM-DD: %w", err)
		}
	}

	body, err := s.api.Create(ctx, httpdomain.SignupPath, req)
	if err != nil {
		return "", fmt.Errorf("signup failed: %w", err)
	}

	var resp messageResponse
	if !body.NoContent() {
		if err := body.Decode(&resp); err != nil {
			return "", fmt.Errorf("failed to decode signup response: %w", err)
		}
	}
	return resp.Message, nil
}

// Logout ends the server session. The local credential is dropped even when
// the call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.api.Create(ctx, httpdomain.LogoutPath, nil)
	s.store.Clear()
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// CurrentToken returns the access token, refreshing it first when none is
// held.
func (s *AuthService) CurrentToken(ctx context.Context) (string, error) {
	cred := s.store.Credential()
	if cred.Present() {
		return cred.Token, nil
	}
	token, err := s.refresher.Refresh(ctx, cred)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshFailed) {
			return "", fmt.Errorf("%w: %w", auth.ErrNotAuthenticated, err)
		}
		return "", err
	}
	return token, nil
}

// HandleAuthFailure is registered as the session's failure handler. It logs
// the user out on a best-effort basis.
func (s *AuthService) HandleAuthFailure() {
	ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
	defer cancel()

	if err := s.Logout(ctx); err != nil {
		s.logger.Debug("logout after failed refresh did not complete", "error", err)
	}
	s.logger.Warn("session expired, run `momfit login` to sign in again")
}
