package main

import (
	"fmt"

	"github.com/Konsultn-Engineering/sqlqb/dialect"
	"github.com/spf13/cobra"
)

func newDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported SQL dialects",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range dialect.Names() {
				d, _ := dialect.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, d.Placeholder(1))
			}
		},
	}
}
