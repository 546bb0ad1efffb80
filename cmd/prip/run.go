package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/engine"
	"github.com/prip-bio/prip/internal/export"
	"github.com/prip-bio/prip/internal/pdb"
)

// previewRows caps how many comprehensive rows are printed after a run.
const previewRows = 50

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <structure.pdb>",
		Short: "Find residue interactions in a PDB file",
		Long: `Run the interaction analysis over one model and chain of a PDB file,
evaluating every residue pair against the rule collection. The rule
collection is frozen when the run starts, so concurrent edits never affect
an in-flight run.

Results are printed as a summary and optionally exported to an .xlsx
workbook with a comprehensive sheet plus one sheet per rule.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalysis,
	}

	cmd.Flags().Int("model", 0, "model serial number (default: first model)")
	cmd.Flags().String("chain", "", "chain identifier (default: first chain)")
	cmd.Flags().StringP("out", "o", "", "write results to this .xlsx file")
	cmd.Flags().Bool("progress", true, "show a progress bar during the scan")

	return cmd
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot rules: %w", err)
	}
	if snapshot.Len() == 0 {
		return fmt.Errorf("no rules configured; add one with: prip rules add")
	}

	structure, err := pdb.Read(args[0])
	if err != nil {
		return fmt.Errorf("failed to read structure: %w", err)
	}

	chain, err := selectChain(cmd, structure)
	if err != nil {
		return err
	}

	residues := chain.Records()
	slog.Info("starting interaction scan",
		"structure", structure.Name,
		"chain", chain.ID,
		"residues", len(residues),
		"rules", snapshot.Len())

	matcher := engine.NewMatcher(snapshot)
	if show, _ := cmd.Flags().GetBool("progress"); show && len(residues) > 0 {
		bar := progressbar.NewOptions(len(residues),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning residue pairs"),
			progressbar.OptionClearOnFinish(),
		)
		matcher.Progress = func(done, _ int) {
			_ = bar.Set(done)
		}
	}

	matches, err := matcher.FindInteractions(ctx, residues)
	if err != nil {
		var missing *engine.MissingCoordinateError
		if errors.As(err, &missing) {
			return fmt.Errorf("chain %s cannot be analyzed: %w", chain.ID, err)
		}
		return fmt.Errorf("interaction scan failed: %w", err)
	}

	results := engine.Aggregate(matches, snapshot)
	printResults(results)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := exportResults(out, results); err != nil {
			return err
		}
	}

	return nil
}

// selectChain resolves the --model and --chain flags, defaulting to the
// first model and its first chain.
func selectChain(cmd *cobra.Command, structure *pdb.Structure) (*pdb.Chain, error) {
	m := structure.Models[0]
	if serial, _ := cmd.Flags().GetInt("model"); serial != 0 {
		var err error
		if m, err = structure.Model(serial); err != nil {
			return nil, err
		}
	}

	if len(m.Chains) == 0 {
		return nil, fmt.Errorf("model %d has no chains", m.Serial)
	}

	if id, _ := cmd.Flags().GetString("chain"); id != "" {
		return m.Chain(id)
	}
	return m.Chains[0], nil
}

func printResults(results *engine.ResultSet) {
	fmt.Println(cli.FormatTitle("Interactions")) //nolint:forbidigo // User-facing output
	fmt.Print(results.Summary())                 //nolint:forbidigo // User-facing output
	fmt.Println()                                //nolint:forbidigo // User-facing output

	if len(results.All) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No residue pair satisfied any rule.")) //nolint:forbidigo // User-facing output
		return
	}

	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s %-12s %-10s %-12s %s", //nolint:forbidigo // User-facing output
		"Residue 1", "Residue 1 id", "Residue 2", "Residue 2 id", "Distance")))
	for i, match := range results.All {
		if i == previewRows {
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("… %d more (use --out to export all)", len(results.All)-previewRows))) //nolint:forbidigo // User-facing output
			break
		}
		fmt.Printf("%-10s %-12d %-10s %-12d %.3f\n", //nolint:forbidigo // User-facing output
			match.ResidueA.Type, match.ResidueA.SeqNum,
			match.ResidueB.Type, match.ResidueB.SeqNum,
			match.Distance)
	}
}

func exportResults(path string, results *engine.ResultSet) error {
	if err := export.WriteWorkbook(path, results); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}
	fmt.Println(cli.FormatSuccess("Results saved to " + path)) //nolint:forbidigo // User-facing output
	return nil
}
