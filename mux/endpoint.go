package mux

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// DefaultAction is the action invoked when no path segment names one.
const DefaultAction = "default"

// Endpoint is a handler type the router dispatches to. A new instance is
// created for every dispatch; Bootstrap wires it to the request and the
// response, and Init runs once before the action.
type Endpoint interface {
	Bootstrap(req *Request, res *Response)
	Init() error
}

// BaseEndpoint implements Endpoint and can be embedded by handler types
// that need no custom wiring.
type BaseEndpoint struct {
	Request  *Request
	Response *Response
}

// Bootstrap stores req and res on the endpoint.
func (b *BaseEndpoint) Bootstrap(req *Request, res *Response) {
	b.Request = req
	b.Response = res
}

// Init does nothing.
func (b *BaseEndpoint) Init() error {
	return nil
}

// Args holds the coerced values passed to an action: positional values
// from unconsumed auto-routed path segments and named values from a
// declared route pattern.
type Args struct {
	Positional []any
	Named      Params
}

// Arg returns the positional value at i, or nil when absent.
func (a *Args) Arg(i int) any {
	if a == nil || i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Get returns the named value, or nil when absent.
func (a *Args) Get(name string) any {
	if a == nil {
		return nil
	}
	return a.Named[name]
}

// Action is a bound action method of an endpoint type.
type Action func(ep Endpoint, args *Args) error

// EndpointType describes a handler type: its fully qualified name, how to
// create an instance, and its actions keyed by lower-cased name. The
// action map is built once at registration time.
type EndpointType struct {
	name    string
	factory func() Endpoint
	actions map[string]Action
	order   []string
}

// NewEndpointType returns an endpoint type with no actions. The factory
// must not be nil; Registry.Register rejects such types with ErrNoFactory.
func NewEndpointType(name string, factory func() Endpoint) *EndpointType {
	return &EndpointType{
		name:    name,
		factory: factory,
		actions: make(map[string]Action),
	}
}

// Action registers fn under name. Names are matched case-insensitively.
func (t *EndpointType) Action(name string, fn Action) *EndpointType {
	key := strings.ToLower(name)
	if _, ok := t.actions[key]; !ok {
		t.order = append(t.order, name)
	}
	t.actions[key] = fn
	return t
}

// Name returns the fully qualified endpoint name.
func (t *EndpointType) Name() string {
	return t.name
}

// New creates a fresh endpoint instance.
func (t *EndpointType) New() Endpoint {
	return t.factory()
}

// Lookup returns the action registered under name, ignoring case.
func (t *EndpointType) Lookup(name string) (Action, bool) {
	fn, ok := t.actions[strings.ToLower(name)]
	return fn, ok
}

// Actions returns the action names in registration order.
func (t *EndpointType) Actions() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

var (
	argsType  = reflect.TypeOf((*Args)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// MethodActions registers every exported method of the endpoint produced
// by t's factory that has the signature func(*Args) error. Reflection is
// used only here; dispatch goes through the resulting action map. A type
// without a factory, or whose factory returns nil, gets no actions.
func MethodActions(t *EndpointType) *EndpointType {
	if t.factory == nil {
		return t
	}

	typ := reflect.TypeOf(t.New())
	if typ == nil {
		return t
	}

	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		mt := m.Type
		if mt.NumIn() != 2 || mt.In(1) != argsType || mt.NumOut() != 1 || mt.Out(0) != errorType {
			continue
		}

		index := m.Index
		t.Action(m.Name, func(ep Endpoint, args *Args) error {
			out := reflect.ValueOf(ep).Method(index).Call([]reflect.Value{reflect.ValueOf(args)})
			if err, _ := out[0].Interface().(error); err != nil {
				return err
			}
			return nil
		})
	}

	return t
}

// Registry maps fully qualified endpoint names to endpoint types. It is
// populated at startup and only read while serving.
type Registry struct {
	types map[string]*EndpointType
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*EndpointType)}
}

// Register adds endpoint types. Registering a name twice, or a type
// without a factory, is an error.
func (r *Registry) Register(types ...*EndpointType) error {
	for _, t := range types {
		if t.factory == nil {
			return fmt.Errorf("mux: %w: %q", ErrNoFactory, t.name)
		}
		if _, ok := r.types[t.name]; ok {
			return fmt.Errorf("mux: %w: %q", ErrDuplicateEndpoint, t.name)
		}
		r.types[t.name] = t
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(types ...*EndpointType) {
	if err := r.Register(types...); err != nil {
		panic(err)
	}
}

// Lookup returns the endpoint type registered under exactly name.
func (r *Registry) Lookup(name string) (*EndpointType, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
