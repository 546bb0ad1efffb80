package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/rules"
)

func rulesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new interaction rule",
		Long: `Create a new interaction rule and add it to the collection.

With no flags you'll be prompted for:
  - Rule name
  - Group A and group B (comma-separated amino-acid codes, e.g. LYS,ARG or K,R)
  - Maximum CA-CA distance in Ångström

Flags allow non-interactive use, e.g.:
  prip rules add --name "Salt bridges" --group-a LYS,ARG --group-b ASP,GLU --distance 4.0`,
		RunE: runRulesAdd,
	}

	cmd.Flags().String("name", "", "rule name")
	cmd.Flags().String("group-a", "", "comma-separated amino-acid codes for group A")
	cmd.Flags().String("group-b", "", "comma-separated amino-acid codes for group B")
	cmd.Flags().String("distance", "", "maximum CA-CA distance in Ångström")

	return cmd
}

func runRulesAdd(cmd *cobra.Command, _ []string) error {
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

	candidate := rules.Candidate{}
	candidate.Name, _ = cmd.Flags().GetString("name")
	candidate.GroupA, _ = cmd.Flags().GetString("group-a")
	candidate.GroupB, _ = cmd.Flags().GetString("group-b")
	candidate.Distance, _ = cmd.Flags().GetString("distance")

	interactive := candidate.GroupA == "" && candidate.GroupB == "" && candidate.Distance == ""
	if interactive {
		if candidate, err = promptCandidate(); err != nil {
			return err
		}
	}

	size, err := storage.CountRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to count rules: %w", err)
	}

	rule, err := newValidator().Validate(candidate, size)
	if err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	if err := storage.CreateRule(ctx, &rule); err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rule %d created: %s", rule.ID, rule.Describe()))) //nolint:forbidigo // User-facing output
	return nil
}

func promptCandidate() (rules.Candidate, error) {
	fmt.Println(cli.FormatTitle("Create Interaction Rule")) //nolint:forbidigo // User-facing output
	fmt.Println()                                           //nolint:forbidigo // User-facing output

	reader := bufio.NewReader(os.Stdin)
	var candidate rules.Candidate
	var err error

	if candidate.Name, err = promptString(reader, "Rule name"); err != nil {
		return candidate, fmt.Errorf("failed to get rule name: %w", err)
	}
	if candidate.GroupA, err = promptString(reader, "Group A (e.g. LYS,ARG)"); err != nil {
		return candidate, fmt.Errorf("failed to get group A: %w", err)
	}
	if candidate.GroupB, err = promptString(reader, "Group B (e.g. ASP,GLU)"); err != nil {
		return candidate, fmt.Errorf("failed to get group B: %w", err)
	}
	if candidate.Distance, err = promptString(reader, "Max distance (Å)"); err != nil {
		return candidate, fmt.Errorf("failed to get distance: %w", err)
	}

	return candidate, nil
}
