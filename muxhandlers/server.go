package muxhandlers

import (
	"os"

	"github.com/vitalvas/kroute/mux"
)

// ServerConfig configures the Server hook behaviour.
type ServerConfig struct {
	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variables, then os.Hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty value
	// is used. Only consulted when Hostname is empty.
	HostnameEnv []string
}

// ServerHook returns a before hook that sets the X-Server-Hostname
// response header. The hostname is resolved once when the hook is
// created. It returns an error if the hostname cannot be determined.
func ServerHook(cfg ServerConfig) (mux.HookBefore, error) {
	hostname, err := resolveHostname(cfg)
	if err != nil {
		return nil, err
	}

	return func(_ *mux.Request, res *mux.Response, _, _ string, _ int) error {
		res.Header.Set("X-Server-Hostname", hostname)
		return nil
	}, nil
}

func resolveHostname(cfg ServerConfig) (string, error) {
	if cfg.Hostname != "" {
		return cfg.Hostname, nil
	}

	for _, env := range cfg.HostnameEnv {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			return v, nil
		}
	}

	return os.Hostname()
}
