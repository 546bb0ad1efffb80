package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/storage"
)

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rule by id",
		Long: `Delete a rule from the collection. The ids of the remaining rules are
unchanged; deleting rule 2 of 5 never relabels rule 3 as rule 2.`,
		Args: cobra.ExactArgs(1),
		RunE: runRulesDelete,
	}
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid rule id %q", args[0])
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

	if err := store.DeleteRule(ctx, id); err != nil {
		if errors.Is(err, storage.ErrRuleNotFound) {
			return fmt.Errorf("no rule with id %d", id)
		}
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rule %d deleted", id))) //nolint:forbidigo // User-facing output
	return nil
}
