package mux

import (
	"fmt"
	"strings"
)

// autoRoute is the result of convention-based resolution.
type autoRoute struct {
	endpoint *EndpointType
	method   string
	action   Action
	args     []any
}

// resolveAuto derives an endpoint type and action from the path segments.
//
// The endpoint name grows one segment at a time (each segment converted
// to CamelCase and appended to the namespace) and stops at the first
// registered name. Without a hit the default endpoint is used and every
// segment stays available. The action is then resolved the same way from
// the remaining segments, falling back to the default action. Segments
// not consumed by either walk become coerced positional arguments.
func (r *Router) resolveAuto(path string) (*autoRoute, error) {
	segments := splitSegments(r.stripNamespace(path))

	var (
		endpoint *EndpointType
		rest     = segments
		name     strings.Builder
	)

	for i, seg := range segments {
		name.WriteString(camelSegment(seg))
		if t, ok := r.registry.Lookup(r.qualify(name.String())); ok {
			endpoint = t
			rest = segments[i+1:]
			break
		}
	}

	if endpoint == nil {
		if r.defaultEndpoint == "" {
			return nil, ErrNoEndpoint
		}
		t, ok := r.registry.Lookup(r.defaultEndpoint)
		if !ok {
			return nil, fmt.Errorf("mux: %w: %q", ErrUnknownEndpoint, r.defaultEndpoint)
		}
		endpoint = t
	}

	var candidate strings.Builder
	for i, seg := range rest {
		candidate.WriteString(camelSegment(seg))
		if action, ok := endpoint.Lookup(candidate.String()); ok {
			return &autoRoute{
				endpoint: endpoint,
				method:   candidate.String(),
				action:   action,
				args:     CoerceAll(rest[i+1:]),
			}, nil
		}
	}

	if action, ok := endpoint.Lookup(DefaultAction); ok {
		return &autoRoute{
			endpoint: endpoint,
			method:   DefaultAction,
			action:   action,
			args:     CoerceAll(rest),
		}, nil
	}

	return nil, fmt.Errorf("mux: %w for %q on %s", ErrNoAction, path, endpoint.Name())
}

// qualify prefixes name with the namespace.
func (r *Router) qualify(name string) string {
	if r.namespace == "" {
		return name
	}
	return r.namespace + "." + name
}

// stripNamespace removes the path form of the namespace ("App.Api" is
// "/app/api") from the front of path when present.
func (r *Router) stripNamespace(path string) string {
	if r.namespace == "" {
		return path
	}

	prefix := "/" + strings.ToLower(strings.ReplaceAll(r.namespace, ".", "/"))
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return path
	}
	if len(path) > len(prefix) && path[len(prefix)] != '/' {
		return path
	}

	return path[len(prefix):]
}
