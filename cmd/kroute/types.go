package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vitalvas/kroute/mux"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the placeholder match types and response formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "TOKEN\tFRAGMENT")
			for _, mt := range mux.MatchTypes() {
				token := mt.Token
				if token == "" {
					token = `""`
				}
				fmt.Fprintf(tw, "%s\t%s\n", token, mt.Fragment)
			}

			fmt.Fprintln(tw, "\nEXTENSION\tFORMAT")
			for _, ext := range sortedExtensions() {
				f, _ := mux.ParseFormat(ext)
				fmt.Fprintf(tw, "%s\t%s (%s)\n", ext, f, f.MIMEType())
			}

			return tw.Flush()
		},
	}
}

func sortedExtensions() []string {
	exts := mux.Extensions()
	out := make([]string, 0, len(exts))
	for ext := range exts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
