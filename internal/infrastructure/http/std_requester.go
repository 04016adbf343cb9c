package httpinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
)

// RequestIDHeader carries a fresh identifier for every attempt.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// StdHttpRequester performs one attempt per Do call. The client's cookie jar
// supplies the ambient session cookie on every request, refresh included.
type StdHttpRequester struct {
	client *http.Client
	retry  httpports.RetryPolicy
	logger hclog.Logger
}

func NewStdHttpRequester(timeout time.Duration, jar http.CookieJar, retry httpports.RetryPolicy, logger hclog.Logger) *StdHttpRequester {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &StdHttpRequester{
		client: &http.Client{Timeout: timeout, Jar: jar},
		retry:  retry,
		logger: logger,
	}
}

func (r *StdHttpRequester) Do(ctx context.Context, endpoint httpdomain.BackendEndpoint, req httpdomain.RequestContext) (httpdomain.Outcome, error) {
	fullURL, err := joinURL(endpoint.BaseURL, req.Path, req.Query)
	if err != nil {
		return httpdomain.Outcome{}, fmt.Errorf("failed to build URL for %s: %w", req.Path, err)
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return httpdomain.Outcome{}, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return httpdomain.Outcome{}, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range buildHeaders(endpoint, req) {
		httpReq.Header.Set(k, v)
	}

	r.logger.Debug("sending request", "method", req.Method, "url", fullURL,
		"retried", req.Retried, "authorized", req.Bearer != "", "request_id", httpReq.Header.Get(RequestIDHeader))

	resp, err := r.client.Do(httpReq)
	if err != nil {
		r.logger.Error("network error", "method", req.Method, "url", fullURL, "error", err)
		return httpdomain.Outcome{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func(b io.ReadCloser) {
		_ = b.Close()
	}(resp.Body)

	return r.classify(req, fullURL, resp)
}

func (r *StdHttpRequester) classify(req httpdomain.RequestContext, fullURL string, resp *http.Response) (httpdomain.Outcome, error) {
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return httpdomain.Outcome{Kind: httpdomain.OutcomeNoContent}, nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return httpdomain.Outcome{}, fmt.Errorf("failed to read response body: %w", err)
		}
		if !json.Valid(data) {
			return httpdomain.Outcome{}, fmt.Errorf("%s %s: %w", req.Method, fullURL, httpdomain.ErrMalformedResponse)
		}
		return httpdomain.Outcome{Kind: httpdomain.OutcomeOK, Body: data}, nil
	}

	httpErr := &httpdomain.Error{
		Status:  resp.StatusCode,
		Message: errorMessage(resp),
		Method:  req.Method,
		URL:     fullURL,
	}

	if resp.StatusCode == http.StatusUnauthorized && r.retry != nil && r.retry.NeedsRefresh(req, resp.StatusCode) {
		r.logger.Debug("credential rejected", "method", req.Method, "url", fullURL)
		return httpdomain.Outcome{Kind: httpdomain.OutcomeNeedsRefresh, Err: httpErr}, nil
	}

	r.logger.Warn("request failed", "method", req.Method, "url", fullURL,
		"status", httpErr.Status, "message", httpErr.Message)
	return httpdomain.Outcome{Kind: httpdomain.OutcomeFailed, Err: httpErr}, nil
}

// errorMessage prefers the server's "message" field over a generic text.
func errorMessage(resp *http.Response) string {
	msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return msg
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return msg
}

// buildHeaders layers endpoint defaults, caller overrides and finally the
// Authorization and Content-Type headers derived from the attempt itself.
// Keys are canonicalized so differently cased overrides replace defaults.
func buildHeaders(endpoint httpdomain.BackendEndpoint, req httpdomain.RequestContext) map[string]string {
	base := map[string]string{
		"Accept": "application/json",
		http.CanonicalHeaderKey(RequestIDHeader): uuid.NewString(),
	}
	if endpoint.UserAgent != "" {
		base["User-Agent"] = endpoint.UserAgent
	}

	overrides := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		ck := http.CanonicalHeaderKey(k)
		if ck == "Authorization" || ck == "Content-Type" {
			continue
		}
		overrides[ck] = v
	}

	own := map[string]string{}
	if req.Bearer != "" {
		own["Authorization"] = "Bearer " + req.Bearer
	}
	if req.Body != nil {
		own["Content-Type"] = "application/json"
	}

	return MergeHeaders(MergeHeaders(base, overrides), own)
}

// joinURL appends p to base verbatim, so a query string inside p survives,
// then merges q into the query.
func joinURL(base, p string, q map[string]string) (string, error) {
	if p != "" && !strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "?") {
		p = "/" + p
	}
	u, err := url.Parse(strings.TrimRight(base, "/") + p)
	if err != nil {
		return "", err
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("base URL %q is not absolute", base)
	}
	if len(q) > 0 {
		vals := u.Query()
		for k, v := range q {
			vals.Set(k, v)
		}
		u.RawQuery = vals.Encode()
	}
	return u.String(), nil
}

var _ httpports.HttpRequester = (*StdHttpRequester)(nil)
