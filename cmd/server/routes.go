package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"tunr-web/internal/navigation"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout(), navigation.DefaultTable())
	},
}

func printRoutes(w io.Writer, table *navigation.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tVIEW\tACCESS")

	for _, r := range table.Routes() {
		access := "public"
		if r.Protected {
			access = "protected"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Pattern, r.View, access)
	}

	return tw.Flush()
}
