package muxhandlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/vitalvas/kroute/mux"
)

// ErrNoAllowedTypes is returned when ContentTypeCheckConfig.AllowedTypes is
// empty.
var ErrNoAllowedTypes = errors.New("content type check: at least one allowed content type is required")

// ContentTypeCheckConfig configures the Content-Type check hook.
type ContentTypeCheckConfig struct {
	// AllowedTypes is the set of acceptable Content-Type values.
	// Matching is case-insensitive and ignores parameters.
	// Required; at least one must be provided.
	AllowedTypes []string

	// Methods is the set of HTTP methods that require Content-Type
	// validation. When nil, defaults to POST, PUT, PATCH.
	Methods []string

	// Endpoints restricts the check to the listed endpoint names.
	// When empty, every dispatched endpoint is checked.
	Endpoints []string
}

var defaultCheckedMethods = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
}

// ContentTypeCheckHook returns a before hook that aborts the dispatch with
// 415 Unsupported Media Type when a request with a checked method carries
// a missing or unexpected Content-Type. It pairs with mux.Bind, which
// picks its decoder from the same header.
//
// It returns ErrNoAllowedTypes if AllowedTypes is empty.
func ContentTypeCheckHook(cfg ContentTypeCheckConfig) (mux.HookBefore, error) {
	if len(cfg.AllowedTypes) == 0 {
		return nil, ErrNoAllowedTypes
	}

	methods := cfg.Methods
	if methods == nil {
		methods = defaultCheckedMethods
	}

	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}

	allowedSet := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowedSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	checked := newEndpointFilter(cfg.Endpoints)

	return func(req *mux.Request, _ *mux.Response, endpoint, _ string, _ int) error {
		if _, ok := methodSet[req.Method]; !ok || !checked.applies(endpoint) {
			return nil
		}

		mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if err != nil {
			return mux.NewHTTPError(http.StatusUnsupportedMediaType, "")
		}

		if _, ok := allowedSet[strings.ToLower(mediaType)]; !ok {
			return mux.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported media type "+mediaType)
		}

		return nil
	}, nil
}
