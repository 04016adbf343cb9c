package httpdomain

import "net/http"

// Methods accepted by the request pipeline.
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodPatch  = http.MethodPatch
	MethodDelete = http.MethodDelete
)

// RequestContext describes one attempt of a backend call. It is rebuilt for
// every attempt so the retry carries its own Bearer and Retried flag.
type RequestContext struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string

	// Body is serialized as JSON. A nil Body sends no payload and no
	// Content-Type header.
	Body interface{}

	// Bearer is the access token attached to this attempt, empty for none.
	Bearer string

	// Retried is set on the single replay that follows a credential refresh.
	Retried bool
}

// Credential is a point-in-time view of the session's access token.
// Generation increases on every store mutation, which lets a caller tell
// whether the token it used has since been replaced or cleared.
type Credential struct {
	Token      string
	Generation uint64
}

// Present reports whether an access token is held.
func (c Credential) Present() bool {
	return c.Token != ""
}
