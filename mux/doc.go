// Package mux implements a request router and dispatcher that turns a
// request path into an invocation of an endpoint action, with typed
// parameter extraction, response format negotiation and a before/after
// hook pipeline.
//
// Two dispatch strategies are combined into one ordered decision:
// convention-based auto-routing from path segments, then declared routes
// in insertion order. When neither matches, the request is not found
// (RFC 9110 Section 15.5.5).
//
// # Endpoints
//
// An endpoint is a handler type registered under a fully qualified name.
// A fresh instance is created for every dispatch, bootstrapped with the
// request and the response, initialized, and then one of its actions is
// called:
//
//	type Users struct{ mux.BaseEndpoint }
//
//	func (u *Users) List(args *mux.Args) error {
//	    u.Response.Set([]string{"alice", "bob"})
//	    return nil
//	}
//
//	reg := mux.NewRegistry()
//	reg.MustRegister(mux.MethodActions(
//	    mux.NewEndpointType("App.Users", func() mux.Endpoint { return &Users{} }),
//	))
//
// MethodActions builds the action map once, from the methods shaped
// func(*mux.Args) error. Actions can also be added explicitly with
// EndpointType.Action.
//
// # Auto-Routing
//
// With a namespace of "App", the path /admin/users/list tries App.Admin,
// then App.AdminUsers, and the first registered name wins. Segments
// are converted to CamelCase, so user_groups and user-groups both become
// UserGroups. The remaining segments name the action the same way
// (case-insensitive, first hit wins), falling back to the "default"
// action. Segments left over are coerced and passed as Args.Positional.
//
//	r := mux.NewRouter(reg).NameSpace("App").DefaultEndpoint("App.Home")
//
// # Declared Routes
//
// Routes are matched in insertion order and the first match wins:
//
//	r.AddRoute("user", "/users/[int:id]", "App.Users", "show")
//	r.AddRoute("report", "/report[.fmt:format]?", "App.Reports", "")
//	r.AddRoute("legacy", "@^/old/(?P<id>[0-9]+)", "App.Legacy", "show")
//	r.AddRoute("fallback", "*", "App.Home", "default")
//
// Placeholders have the form [type], [type:name] or [type:name]?, with an
// optional "/" or "." separator in front of the bracket or as its first
// character ([.fmt:format]). Named captures are coerced and
// stored in Request.Params and Args.Named. Patterns are compiled when the
// route is added; an unknown match type is a *CompileError.
//
// Available match types:
//
//	aln   - alphanumeric run
//	bln   - boolean word (true, false, on, off, yes, no)
//	flt   - signed float literal
//	fmt   - any response format extension
//	int   - digit run
//	h     - hexadecimal run
//	*     - any text, non-greedy
//	**    - any text, greedy
//	.     - one path segment without "/" or "."
//	lid   - letter followed by digits (e.g. A123)
//	lref  - two letter-digit ids joined by "-" (e.g. A12-B34)
//	tel   - phone number (e.g. +1-555-123-4567)
//	utc   - UTC offset (e.g. +02:00)
//	uuid  - RFC 4122 UUID
//	slug  - URL-safe slug
//	alpha - alphabetic characters
//	date  - ISO 8601 date
//
// An empty type, as in [:id], matches one path segment.
//
// # Coercion
//
// Route parameters and positional arguments are coerced by Coerce:
// "on" is true, "1.0" is float64(1), "42" is int64(42), "" and "null" are
// nil, and anything else stays a string.
//
// # Response Formats
//
// A trailing extension selects the response format and is removed before
// matching: /widgets.xml is dispatched as /widgets with FormatXML. A
// "callback" query parameter upgrades JSON to JSONP.
//
// # Hooks
//
//	r.Use(mux.HookBefore(func(req *mux.Request, res *mux.Response, endpoint, method string, i int) error {
//	    return nil
//	}))
//	r.Use(mux.HookAfter(func(req *mux.Request, res *mux.Response, success bool, body string, i int) {}))
//
// Before hooks run in order once the endpoint is resolved; an error aborts
// the dispatch. After hooks run exactly once after every handled or failed
// dispatch, with the serialized body.
//
// # Request Bodies
//
// Bind decodes the request body with the decoder named by Content-Type
// (JSON, XML or YAML) and BindParams copies the named route parameters
// into a struct. Bind errors carry 400 or 415 status codes.
//
// # Per-Request State
//
// Router holds configuration only. Each request gets its own
// RouterContext from Initialize, so a Router is safe for concurrent use
// once configured:
//
//	c := r.Initialize(mux.NewRequest(http.MethodGet, "/users/42.xml"), nil)
//	if err := c.Go(""); err != nil {
//	    status := mux.StatusCode(err)
//	}
package mux
