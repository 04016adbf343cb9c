package httpdomain

import (
	"bytes"
	"encoding/json"
)

// OutcomeKind tags the classification of a single attempt.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeNoContent
	OutcomeNeedsRefresh
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeNoContent:
		return "no_content"
	case OutcomeNeedsRefresh:
		return "needs_refresh"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one attempt. Body is set for OutcomeOK,
// Err for OutcomeNeedsRefresh and OutcomeFailed.
type Outcome struct {
	Kind OutcomeKind
	Body json.RawMessage
	Err  *Error
}

// Result converts the outcome into what callers of the public API receive.
func (o Outcome) Result() (Body, error) {
	switch o.Kind {
	case OutcomeOK:
		return Body{raw: o.Body}, nil
	case OutcomeNoContent:
		return NoContentBody(), nil
	default:
		if o.Err == nil {
			return Body{}, &Error{Message: "request failed without a classified error"}
		}
		return Body{}, o.Err
	}
}

// Body is a successful response payload. A 204 response yields a Body whose
// NoContent reports true; it never compares equal to a JSON null or {} body.
type Body struct {
	raw       json.RawMessage
	noContent bool
}

// NewBody wraps an already validated JSON payload.
func NewBody(raw json.RawMessage) Body {
	return Body{raw: raw}
}

// NoContentBody returns the sentinel for "no content" responses.
func NoContentBody() Body {
	return Body{noContent: true}
}

// NoContent reports whether the server answered 204.
func (b Body) NoContent() bool {
	return b.noContent
}

// Raw returns the JSON payload, nil for a no-content body.
func (b Body) Raw() json.RawMessage {
	return b.raw
}

// IsNull reports whether the payload is the JSON literal null.
func (b Body) IsNull() bool {
	return !b.noContent && bytes.Equal(bytes.TrimSpace(b.raw), []byte("null"))
}

// Decode unmarshals the payload into v. It returns ErrNoContent for a
// no-content body.
func (b Body) Decode(v interface{}) error {
	if b.noContent {
		return ErrNoContent
	}
	return json.Unmarshal(b.raw, v)
}
