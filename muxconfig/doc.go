// Package muxconfig loads a router configuration from YAML and applies it
// to a mux.Router.
//
// A configuration file declares the router flags and the ordered route
// table:
//
//	namespace: App
//	default_endpoint: App.Home
//	auto_route: true
//	xml_root: response
//	callback_param: callback
//	routes:
//	  - name: user
//	    pattern: /users/[int:id]
//	    endpoint: App.Users
//	    method: show
//	  - name: fallback
//	    pattern: "*"
//	    endpoint: App.Home
//
// Values of the form ${VAR} are expanded from the environment before the
// YAML is parsed. Load reads the listed .env files first; variables that
// are already set are not overridden.
//
//	cfg, err := muxconfig.Load("routes.yaml", ".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Apply(router); err != nil {
//	    log.Fatal(err)
//	}
//
// Routes are compiled by Validate, so a typo in a match type is reported
// with the route name before the router is touched.
package muxconfig
