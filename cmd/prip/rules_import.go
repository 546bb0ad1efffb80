package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/config"
	"github.com/prip-bio/prip/internal/rules"
)

func rulesImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import rules from a JSON file",
		Long: `Import rules from a JSON rules file into the collection. Every imported
rule passes the same validation as interactively created ones. The file
defaults to the configured rules.file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRulesImport,
	}
	return cmd
}

func runRulesImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path := config.FromViper().RulesFile
	if len(args) == 1 {
		path = args[0]
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	size, err := store.CountRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to count rules: %w", err)
	}

	imported, err := rules.ReadFile(path, newValidator(), size)
	if err != nil {
		return fmt.Errorf("failed to import rules: %w", err)
	}

	for i := range imported {
		if err := store.CreateRule(ctx, &imported[i]); err != nil {
			return fmt.Errorf("failed to store rule %q: %w", imported[i].Name, err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d rules from %s", len(imported), path))) //nolint:forbidigo // User-facing output
	return nil
}
