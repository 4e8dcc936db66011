package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"marketTags/internal/subgraph"
)

func runChains(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHAIN ID\tENDPOINT")
	for _, id := range subgraph.SupportedChains() {
		tpl, _ := subgraph.EndpointTemplate(id)
		fmt.Fprintf(w, "%s\t%s\n", id, tpl)
	}
	return w.Flush()
}
