package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
)

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the rule collection",
		RunE:  runRulesList,
	}
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	storage, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := storage.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	ruleSet, err := storage.ListRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}

	if len(ruleSet) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No rules configured. Add one with: prip rules add")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Interaction Rules"))                                                                 //nolint:forbidigo // User-facing output
	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-4s %-20s %-24s %-24s %s", "ID", "Name", "Group A", "Group B", "Distance"))) //nolint:forbidigo // User-facing output
	for _, rule := range ruleSet {
		fmt.Printf("%-4d %-20s %-24s %-24s %.2f Å\n", //nolint:forbidigo // User-facing output
			rule.ID, rule.Name,
			strings.Join(rule.GroupA, ","),
			strings.Join(rule.GroupB, ","),
			rule.MaxDistance)
	}

	return nil
}
