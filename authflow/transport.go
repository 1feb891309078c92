package authflow

import "net/http"

// HeaderSource supplies the authentication headers for an outgoing request.
// It is consulted per request so rotated tokens take effect immediately.
type HeaderSource interface {
	AuthHeaders(req *http.Request) (map[string]string, error)
}

// HeaderSourceFunc adapts a function to the HeaderSource interface.
type HeaderSourceFunc func(req *http.Request) (map[string]string, error)

// AuthHeaders implements HeaderSource.
func (f HeaderSourceFunc) AuthHeaders(req *http.Request) (map[string]string, error) {
	return f(req)
}

// Transport is an http.RoundTripper that stamps authentication headers onto
// each request before delegating to the base transport. The incoming
// request is cloned, never mutated.
type Transport struct {
	// Base performs the actual round trip. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Source supplies the headers. nil means requests pass through
	// unmodified.
	Source HeaderSource
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Source == nil {
		return base.RoundTrip(req)
	}
	headers, err := t.Source.AuthHeaders(req)
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	for k, v := range headers {
		clone.Header.Set(k, v)
	}
	return base.RoundTrip(clone)
}
