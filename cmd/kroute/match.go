package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/vitalvas/kroute/mux"
)

// matchResult is the JSON document printed by the match command.
type matchResult struct {
	Path     string     `json:"path"`
	Stripped string     `json:"stripped"`
	Format   string     `json:"format"`
	State    string     `json:"state"`
	Strategy string     `json:"strategy"`
	Endpoint string     `json:"endpoint,omitempty"`
	Method   string     `json:"method,omitempty"`
	Route    string     `json:"route,omitempty"`
	Params   mux.Params `json:"params,omitempty"`
	Args     []any      `json:"args,omitempty"`
	Status   int        `json:"status"`
	Error    string     `json:"error,omitempty"`
}

func matchCmd(opts *options) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Dispatch a path against the configuration and print the resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := loadRouter(opts)
			if err != nil {
				return err
			}

			c := r.Initialize(mux.NewRequest(method, args[0]), nil)
			goErr := c.Go("")

			res := matchResult{
				Path:     args[0],
				Stripped: c.Path(),
				Format:   c.Format().String(),
				State:    c.State().String(),
				Strategy: "none",
				Endpoint: c.Endpoint(),
				Method:   c.Method(),
				Status:   mux.StatusCode(goErr),
			}

			switch {
			case c.Route() != nil:
				res.Strategy = "route"
				res.Route = c.Route().Name
				res.Params = c.Request.Params
			case c.Endpoint() != "":
				res.Strategy = "auto"
				if _, _, positional, err := r.ResolveAuto(c.Path()); err == nil {
					res.Args = positional
				}
			}

			if goErr != nil {
				res.Error = goErr.Error()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}

			if errors.Is(goErr, mux.ErrNotFound) {
				return goErr
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "request method")

	return cmd
}
