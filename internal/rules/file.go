package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/prip-bio/prip/internal/model"
)

// fileRule is the JSON interchange form of a rule, compatible with the
// saved_rules.json layout: group lists under "grp1"/"grp2" and the threshold
// under "distance".
type fileRule struct {
	Name     string   `json:"name"`
	GroupA   []string `json:"grp1"`
	GroupB   []string `json:"grp2"`
	Distance float64  `json:"distance"`
}

// ReadFile loads a rule set from a JSON file. Every entry passes through the
// validator, so a file produced elsewhere cannot smuggle malformed rules into
// the collection. collectionSize is the number of rules already present.
func ReadFile(path string, v *Validator, collectionSize int) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var entries []fileRule
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	validated := make([]model.Rule, 0, len(entries))
	for i, entry := range entries {
		candidate := Candidate{
			Name:     entry.Name,
			GroupA:   strings.Join(entry.GroupA, ","),
			GroupB:   strings.Join(entry.GroupB, ","),
			Distance: strconv.FormatFloat(entry.Distance, 'f', -1, 64),
		}
		rule, err := v.Validate(candidate, collectionSize+i)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		validated = append(validated, rule)
	}

	return validated, nil
}

// WriteFile saves a rule set to a JSON file in the interchange format.
func WriteFile(path string, ruleSet []model.Rule) error {
	entries := make([]fileRule, len(ruleSet))
	for i, rule := range ruleSet {
		entries[i] = fileRule{
			Name:     rule.Name,
			GroupA:   rule.GroupA,
			GroupB:   rule.GroupB,
			Distance: rule.MaxDistance,
		}
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	return nil
}
