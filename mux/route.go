package mux

// Route is a declared route: a named pattern bound to an endpoint action.
type Route struct {
	// Name identifies the route in the route table.
	Name string

	// Pattern is the route pattern: a literal path, "*", an "@" prefixed
	// regular expression, or a pattern with [type:name] placeholders.
	Pattern string

	// Endpoint is the fully qualified endpoint type name.
	Endpoint string

	// Method is the endpoint action invoked on match.
	Method string

	compiled *CompiledPattern
}

// Compiled returns the compiled pattern of the route.
func (r *Route) Compiled() *CompiledPattern {
	return r.compiled
}

// Match tests path against the route and returns the coerced named
// parameters on success. Positional captures are discarded.
func (r *Route) Match(path string) (Params, bool) {
	vars, ok := r.compiled.Match(path)
	if !ok {
		return nil, false
	}

	params := make(Params, len(vars))
	for k, v := range vars {
		params[k] = Coerce(v)
	}
	return params, true
}

// RouteMatch stores information about a matched declared route.
type RouteMatch struct {
	// Route is the matched route.
	Route *Route

	// Params holds the coerced named parameters.
	Params Params
}

// routeTable is the insertion-ordered route mapping. Re-adding a name
// replaces the route in its original position.
type routeTable struct {
	routes []*Route
	index  map[string]int
}

func newRouteTable() *routeTable {
	return &routeTable{index: make(map[string]int)}
}

func (t *routeTable) add(route *Route) {
	if i, ok := t.index[route.Name]; ok {
		t.routes[i] = route
		return
	}
	t.index[route.Name] = len(t.routes)
	t.routes = append(t.routes, route)
}

func (t *routeTable) get(name string) *Route {
	if i, ok := t.index[name]; ok {
		return t.routes[i]
	}
	return nil
}

// match returns the first route in insertion order that matches path.
func (t *routeTable) match(path string, match *RouteMatch) bool {
	for _, route := range t.routes {
		if params, ok := route.Match(path); ok {
			match.Route = route
			match.Params = params
			return true
		}
	}
	return false
}
