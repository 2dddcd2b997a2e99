// Package muxhandlers provides dispatch hooks for the mux router.
//
// Every hook runs inside the router's before/after pipeline, after the
// endpoint and action are resolved, so it sees the endpoint name and the
// action it is guarding or observing. A before hook that returns an error
// aborts the dispatch; the error's status code becomes the response
// status.
//
// # Request ID
//
// RequestIDHook stores a request ID on the request and in its context and
// echoes it in the response header.
//
//	r.Use(muxhandlers.RequestIDHook(muxhandlers.RequestIDConfig{
//	    GenerateFunc:  muxhandlers.GenerateUUIDv7,
//	    TrustIncoming: true,
//	}))
//
// # Basic Auth
//
// BasicAuthHook implements HTTP Basic Authentication per RFC 7617, for all
// endpoints or only the listed ones. Static credential comparison uses
// constant-time comparison.
//
//	hook, err := muxhandlers.BasicAuthHook(muxhandlers.BasicAuthConfig{
//	    Realm:       "Admin",
//	    Credentials: map[string]string{"admin": "secret"},
//	    Endpoints:   []string{"App.Admin"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(hook)
//
// # Observability
//
// LoggingHooks, MetricsHooks and TracingHooks return a before/after pair
// and must be registered together:
//
//	before, after := muxhandlers.MetricsHooks(muxhandlers.MetricsConfig{Registry: reg})
//	r.Use(before, after)
//
// Metrics are labelled by endpoint and action rather than by path, which
// keeps cardinality bounded by the registry size.
package muxhandlers
