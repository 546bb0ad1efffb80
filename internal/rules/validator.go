// Package rules validates candidate interaction rules before they are
// admitted into the rule collection, and reads/writes the JSON interchange
// format for rule sets.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prip-bio/prip/internal/amino"
	"github.com/prip-bio/prip/internal/model"
)

// Candidate is the raw, user-supplied form of a rule: free-text group
// membership lists and a distance string, exactly as they arrive from a
// prompt or an imported file.
type Candidate struct {
	Name     string
	GroupA   string
	GroupB   string
	Distance string
}

// Limits holds the configured bounds the validator enforces.
type Limits struct {
	MaxDistance float64
	MaxRules    int
}

// Validator is the sole admission gate for the rule collection. Inserting a
// validated rule is the caller's responsibility.
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with the given limits.
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Validate checks a candidate for well-formedness and returns the validated
// rule. collectionSize is the current number of rules; accepting a candidate
// that would exceed the configured maximum fails with ErrRuleLimit. The
// returned rule has no ID; storage assigns one at insertion.
func (v *Validator) Validate(c Candidate, collectionSize int) (model.Rule, error) {
	if v.limits.MaxRules > 0 && collectionSize >= v.limits.MaxRules {
		return model.Rule{}, newValidationError(ErrRuleLimit,
			"collection", strconv.Itoa(v.limits.MaxRules))
	}

	distance, err := v.parseDistance(c.Distance)
	if err != nil {
		return model.Rule{}, err
	}

	groupA, err := ParseGroup(c.GroupA, "group A")
	if err != nil {
		return model.Rule{}, err
	}
	groupB, err := ParseGroup(c.GroupB, "group B")
	if err != nil {
		return model.Rule{}, err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = fmt.Sprintf("Rule %d", collectionSize+1)
	}

	return model.Rule{
		Name:        name,
		GroupA:      groupA,
		GroupB:      groupB,
		MaxDistance: distance,
		Comparison:  string(model.ComparisonWithin),
	}, nil
}

func (v *Validator) parseDistance(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	distance, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, newValidationError(ErrInvalidDistance, "distance", trimmed)
	}
	if distance <= 0 {
		return 0, newValidationError(ErrInvalidDistance, "distance", trimmed)
	}
	if v.limits.MaxDistance > 0 && distance > v.limits.MaxDistance {
		return 0, newValidationError(ErrInvalidDistance, "distance", trimmed)
	}
	return distance, nil
}

// ParseGroup splits a comma-separated list of residue-type codes and
// canonicalizes each to its three-letter form. The field name is used in
// error context only.
func ParseGroup(raw, field string) ([]string, error) {
	var group []string
	for _, part := range strings.Split(raw, ",") {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		canon, ok := amino.Canonical(code)
		if !ok {
			return nil, newValidationError(ErrInvalidCode, field, code)
		}
		group = append(group, canon)
	}
	if len(group) == 0 {
		return nil, newValidationError(ErrEmptyGroup, field, "")
	}
	return group, nil
}
