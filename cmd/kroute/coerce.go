package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vitalvas/kroute/mux"
)

func coerceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coerce <value>...",
		Short: "Show how raw path values are coerced",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tTYPE\tVALUE")
			for _, raw := range args {
				v := mux.Coerce(raw)
				fmt.Fprintf(tw, "%q\t%s\t%v\n", raw, typeName(v), v)
			}
			return tw.Flush()
		},
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	default:
		return "string"
	}
}
