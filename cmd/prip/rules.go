package main

import (
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage interaction rules",
		Long: `Manage the interaction rule collection. A rule pairs two amino-acid
groups with a maximum CA-CA distance; a run evaluates every residue pair of
the selected chain against the collection.`,
	}

	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesDeleteCmd())
	cmd.AddCommand(rulesImportCmd())
	cmd.AddCommand(rulesExportCmd())

	return cmd
}
