package services

import (
	"net/http"

	"golang.org/x/oauth2"
)

const (
	acceptHeader = "application/vnd.github.v3+json"
	userAgent    = "GitHub-PR-Update-Script"
)

// Headers returns the headers sent with every GitHub request. Authorization
// is only present when token is non-empty.
func Headers(token string) http.Header {
	h := make(http.Header, 3)
	h.Set("Accept", acceptHeader)
	h.Set("User-Agent", userAgent)
	if token != "" {
		tok := &oauth2.Token{AccessToken: token}
		h.Set("Authorization", tok.Type()+" "+tok.AccessToken)
	}
	return h
}

type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

// NewHeaderTransport wraps base so that every request carries Headers(token),
// replacing whatever the client library set for the same names.
func NewHeaderTransport(base http.RoundTripper, token string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &headerTransport{base: base, headers: Headers(token)}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for name, values := range t.headers {
		r.Header[name] = append([]string(nil), values...)
	}
	return t.base.RoundTrip(r)
}

// NewHTTPClient returns a client with no request deadline; a stalled
// connection blocks until the context is cancelled.
func NewHTTPClient(token string) *http.Client {
	return &http.Client{Transport: NewHeaderTransport(http.DefaultTransport, token)}
}
