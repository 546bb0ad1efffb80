package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/config"
	"github.com/prip-bio/prip/internal/rules"
)

func rulesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the rule collection to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRulesExport,
	}
}

func runRulesExport(cmd *cobra.Command, args []string) error {
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

	ruleSet, err := store.ListRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	if len(ruleSet) == 0 {
		return fmt.Errorf("no rules to export")
	}

	if err := rules.WriteFile(path, ruleSet); err != nil {
		return fmt.Errorf("failed to export rules: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d rules to %s", len(ruleSet), path))) //nolint:forbidigo // User-facing output
	return nil
}
