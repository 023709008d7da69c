package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// Authenticator resolves the acting user from a request. The default
// implementation trusts a gateway-provided header; swapping in token-based
// auth only touches this seam.
type Authenticator interface {
	Actor(r *http.Request) (int64, error)
}

// HeaderAuth reads a numeric user id from a trusted header.
type HeaderAuth struct {
	header string
}

func NewHeaderAuth(header string) *HeaderAuth {
	return &HeaderAuth{header: header}
}

func (a *HeaderAuth) Actor(r *http.Request) (int64, error) {
	raw := r.Header.Get(a.header)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", a.header)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", a.header)
	}
	return id, nil
}
