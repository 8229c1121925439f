package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a tool invocation can surface.
// The dispatcher never returns anything outside this taxonomy.
type ErrorKind string

const (
	// ErrKindInvalidParameter is a caller error: a bad, missing, or unknown
	// parameter. Resolved locally, before any network call.
	ErrKindInvalidParameter ErrorKind = "invalid_parameter"

	// ErrKindTimeout means the upstream call exceeded its deadline.
	ErrKindTimeout ErrorKind = "timeout"

	// ErrKindConnection means the upstream provider could not be reached.
	ErrKindConnection ErrorKind = "connection_error"

	// ErrKindUpstreamHTTP means the provider was reachable but rejected the
	// request with a non-2xx status.
	ErrKindUpstreamHTTP ErrorKind = "upstream_http_error"

	// ErrKindMalformedResponse means the transport call succeeded but the body
	// could not be parsed in the format the caller requested.
	ErrKindMalformedResponse ErrorKind = "malformed_upstream_response"

	// ErrKindInternal is a server-side fault that is none of the above,
	// such as an untyped error escaping the pipeline.
	ErrKindInternal ErrorKind = "internal_error"
)

// InvocationError is the typed error carried through the pipeline. It always
// names the tool and a human-readable cause.
type InvocationError struct {
	Kind   ErrorKind
	Tool   string
	Status int // HTTP status, only for ErrKindUpstreamHTTP
	Msg    string
	Err    error
}

func (e *InvocationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Tool, e.Kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Tool, e.Kind, e.Msg)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// NewInvalidParameter builds the validation failure for a single parameter,
// naming the offending field and the violated constraint.
func NewInvalidParameter(tool, param, constraint string) *InvocationError {
	return &InvocationError{
		Kind: ErrKindInvalidParameter,
		Tool: tool,
		Msg:  fmt.Sprintf("parameter %q %s", param, constraint),
	}
}

// AsInvocationError unwraps err to the typed invocation error, if present.
func AsInvocationError(err error) (*InvocationError, bool) {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
