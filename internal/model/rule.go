package model

import (
	"fmt"
	"strings"
	"time"
)

// Rule pairs two amino-acid groups with a distance threshold defining an
// interaction. ID is a stable identifier assigned at creation time; deleting
// other rules never changes it.
type Rule struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Comparison  string    `json:"comparison"`
	GroupA      []string  `json:"group_a"`
	GroupB      []string  `json:"group_b"`
	MaxDistance float64   `json:"max_distance"`
	ID          int64     `json:"id"`
}

// ComparisonType represents how a pair distance is compared to the threshold.
type ComparisonType string

// Comparison constants. Only the inclusive upper bound is supported.
const (
	ComparisonWithin ComparisonType = "within"
)

// Describe returns a one-line human-readable form of the rule.
func (r Rule) Describe() string {
	return fmt.Sprintf("%s: {%s} x {%s} within %.2f Å",
		r.Name, strings.Join(r.GroupA, ","), strings.Join(r.GroupB, ","), r.MaxDistance)
}

// Snapshot is an immutable copy of the rule collection taken when a run
// starts, so edits to the live collection are never observed mid-run.
// A rule's position within the snapshot is the partition key for that run's
// per-rule output.
type Snapshot struct {
	Rules []Rule
}

// NewSnapshot deep-copies the given rules into a frozen snapshot.
func NewSnapshot(rules []Rule) Snapshot {
	frozen := make([]Rule, len(rules))
	for i, rule := range rules {
		frozen[i] = rule
		frozen[i].GroupA = append([]string(nil), rule.GroupA...)
		frozen[i].GroupB = append([]string(nil), rule.GroupB...)
	}
	return Snapshot{Rules: frozen}
}

// Len returns the number of rules in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Rules)
}
