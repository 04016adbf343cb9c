package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

const refreshKey = "access-token"

// flight is the shared result of one refresh attempt.
type flight struct {
	token string

	// notify is non-nil only for a flight whose own network refresh failed,
	// so the failure handler runs once however many callers waited on it.
	notify *sync.Once
}

// Coordinator renews the access token with at most one refresh in flight.
// Callers that hit a 401 while a refresh is running wait for it and share
// its result instead of starting their own.
type Coordinator struct {
	session  *Session
	provider TokenProvider
	group    singleflight.Group
	logger   hclog.Logger
}

func NewCoordinator(session *Session, provider TokenProvider, logger hclog.Logger) *Coordinator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Coordinator{session: session, provider: provider, logger: logger}
}

// Refresh returns a token newer than stale. When the session already moved
// past stale, the current token is reused without a network call.
func (c *Coordinator) Refresh(ctx context.Context, stale httpdomain.Credential) (string, error) {
	if token, done, err := c.superseded(stale); done {
		return token, err
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(refreshKey, func() (interface{}, error) {
		if token, done, err := c.superseded(stale); done {
			return &flight{token: token}, err
		}
		return c.refresh(flightCtx)
	})

	select {
	case <-ctx.Done():
		// The flight outlives this caller; its failure still reaches the handler.
		go func() { _, _ = c.settle(<-ch) }()
		return "", ctx.Err()
	case res := <-ch:
		return c.settle(res)
	}
}

// settle unpacks a flight result, running the failure handler once per
// failed flight.
func (c *Coordinator) settle(res singleflight.Result) (string, error) {
	f, _ := res.Val.(*flight)
	if res.Err != nil {
		if f != nil && f.notify != nil {
			f.notify.Do(c.session.NotifyAuthFailure)
		}
		return "", res.Err
	}
	return f.token, nil
}

// superseded reports whether the session changed since stale was taken.
func (c *Coordinator) superseded(stale httpdomain.Credential) (string, bool, error) {
	cur := c.session.Credential()
	if cur.Generation == stale.Generation {
		return "", false, nil
	}
	if cur.Present() {
		return cur.Token, true, nil
	}
	return "", true, fmt.Errorf("%w: credential was cleared", ErrRefreshFailed)
}

func (c *Coordinator) refresh(ctx context.Context) (*flight, error) {
	c.logger.Debug("refreshing access token")

	token, err := c.provider.Refresh(ctx)
	if err == nil && token == "" {
		err = fmt.Errorf("refresh response carried no access token")
	}
	if err != nil {
		c.session.Clear()
		c.logger.Error("refresh failed, credential cleared", "error", err)
		return &flight{notify: &sync.Once{}}, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	c.session.SetCredential(token)
	c.logger.Debug("access token refreshed")
	return &flight{token: token}, nil
}

var _ httpports.TokenRefresher = (*Coordinator)(nil)
