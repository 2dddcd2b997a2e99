package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the declared routes in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, r, err := loadRouter(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "namespace: %s\n", cfg.Namespace)
			fmt.Fprintf(out, "default endpoint: %s\n", cfg.DefaultEndpoint)
			fmt.Fprintf(out, "auto-routing: %t\n\n", r.AutoRouting())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tPATTERN\tENDPOINT\tMETHOD\tEXPR")
			for i, route := range r.Routes() {
				expr := route.Compiled().Expr()
				if expr == "" {
					expr = "-"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, route.Name, route.Pattern, route.Endpoint, route.Method, expr)
			}

			return tw.Flush()
		},
	}
}
