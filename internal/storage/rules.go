package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/prip-bio/prip/internal/model"
)

// ErrRuleNotFound is returned when a rule id does not exist.
var ErrRuleNotFound = fmt.Errorf("rule not found")

// CreateRule inserts a validated rule and assigns its stable id.
func (s *SQLiteStorage) CreateRule(ctx context.Context, rule *model.Rule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if rule == nil {
		return fmt.Errorf("rule cannot be nil")
	}

	query := `
		INSERT INTO rules (name, group_a, group_b, max_distance, comparison)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		rule.Name,
		strings.Join(rule.GroupA, ","),
		strings.Join(rule.GroupB, ","),
		rule.MaxDistance,
		rule.Comparison,
	)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule ID: %w", err)
	}

	rule.ID = id
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	return nil
}

// GetRule retrieves a rule by its stable id.
func (s *SQLiteStorage) GetRule(ctx context.Context, id int64) (*model.Rule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, group_a, group_b, max_distance, comparison, created_at, updated_at
		FROM rules
		WHERE id = ?
	`

	rule, err := scanRule(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return rule, nil
}

// ListRules retrieves the rule collection in insertion order.
func (s *SQLiteStorage) ListRules(ctx context.Context) ([]model.Rule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, group_a, group_b, max_distance, comparison, created_at, updated_at
		FROM rules
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ruleSet []model.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		ruleSet = append(ruleSet, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return ruleSet, nil
}

// CountRules returns the current size of the rule collection.
func (s *SQLiteStorage) CountRules(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rules").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return count, nil
}

// DeleteRule removes a rule. Ids of surviving rules are untouched; SQLite's
// AUTOINCREMENT guarantees the deleted id is never reassigned.
func (s *SQLiteStorage) DeleteRule(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// Snapshot atomically freezes the current rule collection for a run.
func (s *SQLiteStorage) Snapshot(ctx context.Context) (model.Snapshot, error) {
	ruleSet, err := s.ListRules(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	return model.NewSnapshot(ruleSet), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*model.Rule, error) {
	var rule model.Rule
	var groupA, groupB string
	err := row.Scan(
		&rule.ID, &rule.Name, &groupA, &groupB,
		&rule.MaxDistance, &rule.Comparison,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rule.GroupA = strings.Split(groupA, ",")
	rule.GroupB = strings.Split(groupB, ",")
	return &rule, nil
}
