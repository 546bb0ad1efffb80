package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/prip-bio/prip/internal/cli"
	"github.com/prip-bio/prip/internal/config"
	"github.com/prip-bio/prip/internal/rules"
	"github.com/prip-bio/prip/internal/storage"
)

// initStorage opens the rule store and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg := config.FromViper()

	store, err := storage.NewSQLiteStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule store: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate rule store: %w", err)
	}

	return store, nil
}

// newValidator builds the rule validator from the configured limits.
func newValidator() *rules.Validator {
	cfg := config.FromViper()
	return rules.NewValidator(rules.Limits{
		MaxRules:    cfg.MaxRules,
		MaxDistance: cfg.MaxDistance,
	})
}

func promptString(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", cli.FormatPrompt(prompt)) //nolint:forbidigo // User-facing output

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}
