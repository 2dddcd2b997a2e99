package muxhandlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/vitalvas/kroute/mux"
)

// ErrNoAuthSource is returned when BasicAuthConfig has neither ValidateFunc
// nor Credentials configured.
var ErrNoAuthSource = errors.New("basic auth: at least one of ValidateFunc or Credentials must be set")

// BasicAuthConfig configures the Basic Auth hook behaviour.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc7617
type BasicAuthConfig struct {
	// Realm is sent in the WWW-Authenticate header.
	// Defaults to "Restricted" when empty.
	Realm string

	// ValidateFunc validates credentials for the resolved endpoint.
	// Takes priority over Credentials when both are set.
	ValidateFunc func(endpoint, username, password string) bool

	// Credentials is a static map of username -> password pairs, compared
	// in constant time.
	Credentials map[string]string

	// Endpoints restricts the check to the listed endpoint names.
	// When empty, every dispatched endpoint is protected.
	Endpoints []string
}

// BasicAuthHook returns a before hook that rejects the dispatch with
// 401 Unauthorized when the Authorization header is missing or the
// credentials are invalid.
//
// It returns ErrNoAuthSource if both ValidateFunc and Credentials are nil/empty.
func BasicAuthHook(cfg BasicAuthConfig) (mux.HookBefore, error) {
	if cfg.ValidateFunc == nil && len(cfg.Credentials) == 0 {
		return nil, ErrNoAuthSource
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}

	wwwAuthenticate := fmt.Sprintf("Basic realm=%q", realm)

	protected := newEndpointFilter(cfg.Endpoints)

	validate := cfg.ValidateFunc
	credentials := cfg.Credentials

	return func(req *mux.Request, res *mux.Response, endpoint, _ string, _ int) error {
		if !protected.applies(endpoint) {
			return nil
		}

		username, password, ok := basicAuth(req)
		if !ok {
			return unauthorized(res, wwwAuthenticate)
		}

		if validate != nil {
			if !validate(endpoint, username, password) {
				return unauthorized(res, wwwAuthenticate)
			}
			return nil
		}

		expectedPassword, exists := credentials[username]
		// Compare even for unknown users so timing does not reveal them.
		passwordMatch := constantTimeEqual(password, expectedPassword)
		if !exists || !passwordMatch {
			return unauthorized(res, wwwAuthenticate)
		}

		return nil
	}, nil
}

// basicAuth parses the Authorization header with the net/http parser.
func basicAuth(req *mux.Request) (username, password string, ok bool) {
	if req.Header == nil {
		return "", "", false
	}
	return (&http.Request{Header: req.Header}).BasicAuth()
}

// constantTimeEqual compares two strings in constant time by first hashing
// them with SHA-256, which also hides length differences.
func constantTimeEqual(a, b string) bool {
	aHash := sha256.Sum256([]byte(a))
	bHash := sha256.Sum256([]byte(b))

	return subtle.ConstantTimeCompare(aHash[:], bHash[:]) == 1
}

// unauthorized sets the WWW-Authenticate challenge and returns the 401
// error that aborts the dispatch.
func unauthorized(res *mux.Response, wwwAuthenticate string) error {
	res.Header.Set("WWW-Authenticate", wwwAuthenticate)
	return mux.NewHTTPError(http.StatusUnauthorized, "")
}
