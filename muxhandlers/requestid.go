package muxhandlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/vitalvas/kroute/mux"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored in the context by
// RequestIDHook. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDFromRequest returns the request ID stored on the request by
// RequestIDHook. Returns an empty string if no ID is present.
func RequestIDFromRequest(req *mux.Request) string {
	if id, ok := req.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID hook behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request. Defaults to GenerateUUIDv4.
	GenerateFunc func(req *mux.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestIDHook returns a before hook that generates or propagates a
// request ID. The ID is stored on the request and its context, and set
// on the response header for the caller.
func RequestIDHook(cfg RequestIDConfig) mux.HookBefore {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(req *mux.Request, res *mux.Response, _, _ string, _ int) error {
		id := ""
		if trustIncoming && req.Header != nil {
			id = req.Header.Get(headerName)
		}

		if id == "" {
			id = generate(req)
		}

		if id == "" {
			return nil
		}

		req.SetValue(requestIDKey{}, id)
		req.SetContext(context.WithValue(req.Context(), requestIDKey{}, id))
		res.Header.Set(headerName, id)

		return nil
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *mux.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *mux.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
