package mux

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Params is the parameter bag filled by either dispatch strategy.
type Params map[string]any

// Request is the normalized inbound request handed to hooks and endpoints.
type Request struct {
	// Method is the HTTP request method.
	Method string

	// Path is the request path without the query string.
	Path string

	// Query holds the parsed query string.
	Query url.Values

	// Header holds the request header fields.
	Header http.Header

	// Body is the request body, if any.
	Body io.Reader

	// Params is filled with coerced route parameters during dispatch.
	Params Params

	ctx    context.Context
	values map[any]any
}

// NewRequest returns a request for method and target, where target is a
// path optionally followed by a query string. An unparsable target is
// used verbatim as the path.
func NewRequest(method, target string) *Request {
	req := &Request{
		Method: method,
		Path:   target,
		Query:  url.Values{},
		Header: make(http.Header),
		Params: make(Params),
		ctx:    context.Background(),
	}

	if u, err := url.Parse(target); err == nil {
		req.Path = u.Path
		req.Query = u.Query()
	}

	return req
}

// RequestFromHTTP converts an *http.Request into a Request.
func RequestFromHTTP(r *http.Request) *Request {
	return &Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header,
		Body:   r.Body,
		Params: make(Params),
		ctx:    r.Context(),
	}
}

// Context returns the request context. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// SetContext replaces the request context. Hooks use it to attach
// request-scoped values such as trace spans.
func (r *Request) SetContext(ctx context.Context) {
	r.ctx = ctx
}

// Param returns a route parameter, falling back to the coerced query
// value of the same name.
func (r *Request) Param(name string) (any, bool) {
	if v, ok := r.Params[name]; ok {
		return v, true
	}
	if r.Query.Has(name) {
		return Coerce(r.Query.Get(name)), true
	}
	return nil, false
}

// SetValue stores a request-scoped value for hooks and endpoints.
func (r *Request) SetValue(key, val any) {
	if r.values == nil {
		r.values = make(map[any]any)
	}
	r.values[key] = val
}

// Value returns a value stored with SetValue.
func (r *Request) Value(key any) any {
	return r.values[key]
}

// State is the dispatch state of a RouterContext.
type State int

const (
	StateInitialized State = iota
	StateDispatching
	StateHandled
	StateNotFound
	StateFailed
)

var stateNames = [...]string{"initialized", "dispatching", "handled", "not_found", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// RouterContext is the per-request routing state. It is created by
// Router.Initialize and must not be shared between requests.
type RouterContext struct {
	router *Router

	// Request is the inbound request.
	Request *Request

	// Response is the response endpoints write to.
	Response *Response

	path     string
	format   Format
	state    State
	route    *Route
	endpoint string
	method   string
	body     []byte
}

// Path returns the request path with any format extension removed.
func (c *RouterContext) Path() string {
	return c.path
}

// Format returns the resolved response format.
func (c *RouterContext) Format() Format {
	return c.format
}

// State returns the dispatch state.
func (c *RouterContext) State() State {
	return c.state
}

// Route returns the matched declared route, or nil when the request was
// auto-routed or not routed at all.
func (c *RouterContext) Route() *Route {
	return c.route
}

// Endpoint returns the resolved endpoint name, if any.
func (c *RouterContext) Endpoint() string {
	return c.endpoint
}

// Method returns the resolved action name, if any.
func (c *RouterContext) Method() string {
	return c.method
}

// Body returns the serialized response produced by Go.
func (c *RouterContext) Body() []byte {
	return c.body
}
