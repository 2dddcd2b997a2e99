package muxconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vitalvas/kroute/mux"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid router config")

// RouteConfig declares one route of the route table.
type RouteConfig struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Endpoint string `yaml:"endpoint"`
	Method   string `yaml:"method,omitempty"`
}

// Config is the file form of the router configuration.
type Config struct {
	// AutoRoute enables or disables auto-routing. Nil keeps the router
	// default.
	AutoRoute *bool `yaml:"auto_route,omitempty"`

	Namespace       string `yaml:"namespace,omitempty"`
	DefaultEndpoint string `yaml:"default_endpoint,omitempty"`
	XMLRoot         string `yaml:"xml_root,omitempty"`

	// CallbackParam is the JSONP query parameter. Empty keeps the router
	// default.
	CallbackParam string `yaml:"callback_param,omitempty"`

	// Endpoints optionally lists endpoint names and their actions. It is
	// used by tooling that inspects a configuration without the
	// application's endpoint types.
	Endpoints map[string][]string `yaml:"endpoints,omitempty"`

	Routes []RouteConfig `yaml:"routes"`
}

// Load reads envFiles with godotenv, then reads the YAML file at path,
// expands ${VAR} references and parses and validates the result.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("muxconfig: load env: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("muxconfig: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes and validates a YAML configuration. Unknown keys are an
// error.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("muxconfig: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks route names, required fields and patterns. All problems
// are reported together.
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Routes))
	for i, rt := range c.Routes {
		switch {
		case rt.Name == "":
			errs = append(errs, fmt.Errorf("%w: route %d: name is required", ErrInvalidConfig, i))
			continue
		case seen[rt.Name]:
			errs = append(errs, fmt.Errorf("%w: route %q: duplicate name", ErrInvalidConfig, rt.Name))
			continue
		}
		seen[rt.Name] = true

		if rt.Endpoint == "" {
			errs = append(errs, fmt.Errorf("%w: route %q: endpoint is required", ErrInvalidConfig, rt.Name))
		}

		if rt.Pattern == "" {
			errs = append(errs, fmt.Errorf("%w: route %q: pattern is required", ErrInvalidConfig, rt.Name))
			continue
		}

		if _, err := mux.CompilePattern(rt.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: route %q: %w", ErrInvalidConfig, rt.Name, err))
		}
	}

	return errors.Join(errs...)
}

// Apply configures r: flags first, then the routes in file order. The
// endpoints named by the routes must be registered in r's registry.
func (c *Config) Apply(r *mux.Router) error {
	if c.Namespace != "" {
		r.NameSpace(c.Namespace)
	}
	if c.DefaultEndpoint != "" {
		r.DefaultEndpoint(c.DefaultEndpoint)
	}
	if c.XMLRoot != "" {
		r.SetXMLRoot(c.XMLRoot)
	}
	if c.CallbackParam != "" {
		r.SetCallbackParam(c.CallbackParam)
	}
	if c.AutoRoute != nil {
		if *c.AutoRoute {
			r.DoAutoRoute()
		} else {
			r.DoNotAutoRoute()
		}
	}

	for _, rt := range c.Routes {
		if err := r.AddRoute(rt.Name, rt.Pattern, rt.Endpoint, rt.Method); err != nil {
			return fmt.Errorf("muxconfig: %w", err)
		}
	}

	return nil
}

// InspectionRegistry returns a registry of placeholder endpoint types for
// every endpoint the configuration names, with every action it names plus
// the default action. A placeholder action responds with the endpoint,
// the action and the arguments it received. It lets tools resolve paths
// against a configuration without the application code.
func (c *Config) InspectionRegistry() *mux.Registry {
	actions := make(map[string]map[string]struct{})
	add := func(endpoint, action string) {
		if endpoint == "" {
			return
		}
		if actions[endpoint] == nil {
			actions[endpoint] = map[string]struct{}{mux.DefaultAction: {}}
		}
		if action != "" {
			actions[endpoint][action] = struct{}{}
		}
	}

	add(c.DefaultEndpoint, "")
	for name, list := range c.Endpoints {
		add(name, "")
		for _, action := range list {
			add(name, action)
		}
	}
	for _, rt := range c.Routes {
		add(rt.Endpoint, rt.Method)
	}

	reg := mux.NewRegistry()
	for name, set := range actions {
		t := mux.NewEndpointType(name, func() mux.Endpoint { return &mux.BaseEndpoint{} })
		for action := range set {
			t.Action(action, echoAction(name, action))
		}
		reg.MustRegister(t)
	}

	return reg
}

func echoAction(endpoint, action string) mux.Action {
	return func(ep mux.Endpoint, args *mux.Args) error {
		if b, ok := ep.(*mux.BaseEndpoint); ok {
			b.Response.Set(map[string]any{
				"endpoint": endpoint,
				"action":   action,
				"params":   args.Named,
				"args":     args.Positional,
			})
		}
		return nil
	}
}
