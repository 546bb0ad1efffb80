package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/pdb"
)

func chainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains <structure.pdb>",
		Short: "List the models and chains of a PDB file",
		Long: `Inspect a PDB file and list its models and chains, so you can pick a
model/chain pair for the run command. Gzipped files (.pdb.gz) are supported.`,
		Args: cobra.ExactArgs(1),
		RunE: runChains,
	}
}

func runChains(_ *cobra.Command, args []string) error {
	structure, err := pdb.Read(args[0])
	if err != nil {
		return fmt.Errorf("failed to read structure: %w", err)
	}

	fmt.Println(cli.FormatTitle(structure.Name)) //nolint:forbidigo // User-facing output
	for _, m := range structure.Models {
		fmt.Printf("Model %d\n", m.Serial) //nolint:forbidigo // User-facing output
		for _, chain := range m.Chains {
			records := chain.Records()
			missing := 0
			for _, r := range records {
				if r.CA == nil {
					missing++
				}
			}

			line := fmt.Sprintf("  Chain %s: %d residues", chain.ID, len(records))
			if missing > 0 {
				line += cli.SubtleStyle.Render(fmt.Sprintf(" (%d without CA)", missing))
			}
			fmt.Println(line) //nolint:forbidigo // User-facing output
		}
	}

	if len(structure.Models) > 1 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("\n%d models; pass --model to select one", len(structure.Models)))) //nolint:forbidigo // User-facing output
	}

	return nil
}
