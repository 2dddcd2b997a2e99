package mux

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// DefaultCallbackParam is the query parameter that upgrades JSON
// responses to JSONP.
const DefaultCallbackParam = "callback"

// Router holds the routing configuration: the endpoint registry, the
// ordered route table, hooks and flags. It is configured at startup and
// only read while serving; per-request state lives in RouterContext.
//
// It implements the http.Handler interface:
//
//	reg := mux.NewRegistry()
//	reg.MustRegister(mux.MethodActions(mux.NewEndpointType("App.Users", newUsers)))
//	r := mux.NewRouter(reg).NameSpace("App")
//	http.ListenAndServe(":8080", r)
type Router struct {
	// NotFoundHandler is called when no route matches.
	// If nil, a serialized 404 response is written.
	NotFoundHandler http.Handler

	registry        *Registry
	routes          *routeTable
	hooks           hookPipeline
	autoRoute       bool
	defaultEndpoint string
	namespace       string
	xmlRoot         string
	callbackParam   string
	logger          *slog.Logger
}

// NewRouter returns a router with auto-routing enabled, an empty route
// table and no hooks. A nil registry is replaced by an empty one.
func NewRouter(registry *Registry) *Router {
	if registry == nil {
		registry = NewRegistry()
	}

	return &Router{
		registry:      registry,
		routes:        newRouteTable(),
		autoRoute:     true,
		xmlRoot:       DefaultXMLRoot,
		callbackParam: DefaultCallbackParam,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// --- Registration ---

// AddRoute declares a route. The pattern is compiled and the endpoint and
// action are checked immediately, so mistakes surface here rather than
// at request time. An empty method selects the default action. Adding a
// name that already exists replaces that route in place.
func (r *Router) AddRoute(name, pattern, endpoint, method string) error {
	compiled, err := CompilePattern(pattern)
	if err != nil {
		r.logger.Error("route rejected", slog.String("route", name), slog.Any("error", err))
		return err
	}

	t, ok := r.registry.Lookup(endpoint)
	if !ok {
		return fmt.Errorf("mux: route %q: %w: %q", name, ErrUnknownEndpoint, endpoint)
	}

	if method == "" {
		method = DefaultAction
	}
	if _, ok := t.Lookup(method); !ok {
		return fmt.Errorf("mux: route %q: %w: %s.%s", name, ErrNoAction, endpoint, method)
	}

	r.routes.add(&Route{
		Name:     name,
		Pattern:  pattern,
		Endpoint: endpoint,
		Method:   method,
		compiled: compiled,
	})

	r.logger.Debug("route added",
		slog.String("route", name),
		slog.String("pattern", pattern),
		slog.String("endpoint", endpoint),
		slog.String("method", method),
	)

	return nil
}

// DefaultEndpoint sets the endpoint used by auto-routing when no endpoint
// name can be derived from the path.
func (r *Router) DefaultEndpoint(name string) *Router {
	r.defaultEndpoint = name
	return r
}

// NameSpace sets the namespace prepended to auto-routed endpoint names
// and stripped from the front of auto-routed paths.
func (r *Router) NameSpace(prefix string) *Router {
	r.namespace = prefix
	return r
}

// DoAutoRoute enables auto-routing.
func (r *Router) DoAutoRoute() *Router {
	r.autoRoute = true
	return r
}

// DoNotAutoRoute disables auto-routing; only declared routes match.
func (r *Router) DoNotAutoRoute() *Router {
	r.autoRoute = false
	return r
}

// Use appends hooks to the pipeline. Hooks run in registration order and
// cannot be removed.
func (r *Router) Use(hooks ...Hook) *Router {
	for _, h := range hooks {
		h.register(&r.hooks)
	}
	return r
}

// SetXMLRoot sets the root element name of XML responses.
func (r *Router) SetXMLRoot(name string) *Router {
	r.xmlRoot = name
	return r
}

// SetCallbackParam sets the query parameter that upgrades JSON responses
// to JSONP. An empty name disables the upgrade.
func (r *Router) SetCallbackParam(name string) *Router {
	r.callbackParam = name
	return r
}

// SetLogger sets the logger used for routing diagnostics.
func (r *Router) SetLogger(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.logger = logger
	return r
}

// --- Inspection ---

// Registry returns the endpoint registry.
func (r *Router) Registry() *Registry {
	return r.registry
}

// Routes returns the declared routes in match order.
func (r *Router) Routes() []*Route {
	out := make([]*Route, len(r.routes.routes))
	copy(out, r.routes.routes)
	return out
}

// Get returns the declared route with the given name, or nil.
func (r *Router) Get(name string) *Route {
	return r.routes.get(name)
}

// AutoRouting reports whether auto-routing is enabled.
func (r *Router) AutoRouting() bool {
	return r.autoRoute
}

// Match tests path against the declared routes without dispatching.
func (r *Router) Match(path string, match *RouteMatch) bool {
	return r.routes.match(path, match)
}

// ResolveAuto runs auto-routing for path without dispatching and returns
// the endpoint name, the action name and the positional arguments.
func (r *Router) ResolveAuto(path string) (endpoint, method string, args []any, err error) {
	ar, err := r.resolveAuto(path)
	if err != nil {
		return "", "", nil, err
	}
	return ar.endpoint.Name(), ar.method, ar.args, nil
}

// --- Dispatch ---

// Initialize creates the routing state for one request: it resolves the
// response format from the request path and query and prepares the
// response. The returned context must not be shared between requests.
func (r *Router) Initialize(req *Request, res *Response) *RouterContext {
	if req.Params == nil {
		req.Params = make(Params)
	}
	if res == nil {
		res = NewResponse()
	}
	if res.Header == nil {
		res.Header = make(http.Header)
	}

	path, format := ResolveRequestFormat(req.Path, req.Query, r.callbackParam)

	res.Format = format
	res.XMLRoot = r.xmlRoot
	if format == FormatJSONP {
		res.Callback = DefaultCallbackParam
		if r.callbackParam != "" && req.Query.Get(r.callbackParam) != "" {
			res.Callback = req.Query.Get(r.callbackParam)
		}
	}

	return &RouterContext{
		router:   r,
		Request:  req,
		Response: res,
		path:     path,
		format:   format,
		state:    StateInitialized,
	}
}

// Dispatch initializes a context for req and runs it.
func (r *Router) Dispatch(req *Request, res *Response) (*RouterContext, error) {
	c := r.Initialize(req, res)
	return c, c.Go("")
}

// dispatchTarget is a resolved endpoint action ready to run.
type dispatchTarget struct {
	endpoint *EndpointType
	method   string
	action   Action
	args     *Args
	route    *Route
}

// Go dispatches path, or the request path when path is empty. Auto-routing
// is tried first when enabled, then the declared routes in order. When
// nothing matches a *NotFoundError is returned. Failures raised by hooks
// or the endpoint are returned as *DispatchError. After a handled or
// failed dispatch the response is serialized and the after hooks run
// exactly once.
func (c *RouterContext) Go(path string) error {
	r := c.router
	if path == "" {
		path = c.path
	}

	c.state = StateDispatching

	target := c.resolve(path)
	if target == nil {
		c.state = StateNotFound
		r.logger.Debug("no route found", slog.String("path", path))
		return &NotFoundError{Path: path}
	}

	c.route = target.route
	c.endpoint = target.endpoint.Name()
	c.method = target.method

	var dispatchErr error
	if err := c.invoke(target); err != nil {
		dispatchErr = &DispatchError{Path: path, Endpoint: c.endpoint, Method: c.method, Err: err}
		r.logger.Error("dispatch failed",
			slog.String("path", path),
			slog.String("endpoint", c.endpoint),
			slog.String("method", c.method),
			slog.Any("error", err),
		)
	}

	body, err := c.serialize(dispatchErr)
	if err != nil && dispatchErr == nil {
		dispatchErr = &DispatchError{Path: path, Endpoint: c.endpoint, Method: c.method, Err: err}
		body, _ = c.serialize(dispatchErr)
	}
	c.body = body

	if dispatchErr != nil {
		c.state = StateFailed
	} else {
		c.state = StateHandled
	}

	if err := r.hooks.runAfter(c.Request, c.Response, dispatchErr == nil, string(body)); err != nil {
		r.logger.Error("after hook failed", slog.String("path", path), slog.Any("error", err))
	}

	return dispatchErr
}

// resolve finds the dispatch target for path, or nil.
func (c *RouterContext) resolve(path string) *dispatchTarget {
	r := c.router

	if r.autoRoute {
		ar, err := r.resolveAuto(path)
		if err == nil {
			return &dispatchTarget{
				endpoint: ar.endpoint,
				method:   ar.method,
				action:   ar.action,
				args:     &Args{Positional: ar.args, Named: c.Request.Params},
			}
		}
		r.logger.Debug("auto-routing failed", slog.String("path", path), slog.Any("error", err))
	}

	var match RouteMatch
	if !r.routes.match(path, &match) {
		return nil
	}

	for k, v := range match.Params {
		c.Request.Params[k] = v
	}

	t, ok := r.registry.Lookup(match.Route.Endpoint)
	if !ok {
		return nil
	}
	action, ok := t.Lookup(match.Route.Method)
	if !ok {
		return nil
	}

	return &dispatchTarget{
		endpoint: t,
		method:   match.Route.Method,
		action:   action,
		args:     &Args{Named: c.Request.Params},
		route:    match.Route,
	}
}

// invoke creates and bootstraps the endpoint, runs the before hooks, Init
// and the action. Panics are recovered into *PanicError.
func (c *RouterContext) invoke(t *dispatchTarget) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()

	ep := t.endpoint.New()
	ep.Bootstrap(c.Request, c.Response)

	if err := c.router.hooks.runBefore(c.Request, c.Response, t.endpoint.Name(), t.method); err != nil {
		return err
	}

	if err := ep.Init(); err != nil {
		return err
	}

	return t.action(ep, t.args)
}

// serialize encodes the response. When dispatchErr is set the response
// is replaced by an error payload first. If the payload cannot be
// encoded in the requested format, it falls back to plain text.
func (c *RouterContext) serialize(dispatchErr error) ([]byte, error) {
	res := c.Response
	if dispatchErr != nil {
		status := StatusCode(dispatchErr)
		res.Status = status
		res.Data = errorPayload(status, dispatchErr)
	}

	body, err := res.Serialize()
	if err == nil {
		return body, nil
	}

	if dispatchErr != nil {
		res.Format = FormatText
		return encodeText(errorMessage(dispatchErr)), nil
	}

	return nil, err
}

// errorPayload is the response body of a failed or unmatched dispatch.
func errorPayload(status int, err error) map[string]any {
	return map[string]any{
		"status": status,
		"error":  errorMessage(err),
	}
}

func errorMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}

// ServeHTTP dispatches the request and writes the serialized response.
// Implements http.Handler per RFC 9110.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	request := RequestFromHTTP(req)
	request.Path = cleanPath(request.Path)

	c := r.Initialize(request, NewResponse())
	err := c.Go("")

	if errors.Is(err, ErrNotFound) {
		if r.NotFoundHandler != nil {
			r.NotFoundHandler.ServeHTTP(w, req)
			return
		}

		c.Response.Status = http.StatusNotFound
		c.Response.Data = errorPayload(http.StatusNotFound, err)
		body, serr := c.Response.Serialize()
		if serr != nil {
			c.Response.Format = FormatText
			body = encodeText(err.Error())
		}
		c.Response.WriteTo(w, body)
		return
	}

	c.Response.WriteTo(w, c.Body())
}
