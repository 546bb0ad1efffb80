package engine

import (
	"fmt"
	"strings"

	"github.com/prip-bio/prip/internal/model"
)

// ResultSet groups one run's matches for presentation and export: the
// comprehensive listing plus a bucket per rule. Buckets partition the same
// Match values; no distance is recomputed.
type ResultSet struct {
	ByRule   map[int][]model.Match
	All      []model.Match
	Snapshot model.Snapshot
}

// Aggregate partitions the matcher's output into per-rule buckets. Every
// snapshot position gets a bucket, empty when no pair satisfied that rule.
func Aggregate(matches []model.Match, snapshot model.Snapshot) *ResultSet {
	rs := &ResultSet{
		All:      matches,
		ByRule:   make(map[int][]model.Match, snapshot.Len()),
		Snapshot: snapshot,
	}

	for pos := 0; pos < snapshot.Len(); pos++ {
		rs.ByRule[pos] = nil
	}
	for _, match := range matches {
		for _, pos := range match.RulePositions {
			rs.ByRule[pos] = append(rs.ByRule[pos], match)
		}
	}

	return rs
}

// RuleMatches returns the ordered matches attributed to the rule at the
// given snapshot position.
func (rs *ResultSet) RuleMatches(position int) []model.Match {
	return rs.ByRule[position]
}

// Summary returns the per-rule match counts as display text.
func (rs *ResultSet) Summary() string {
	var b strings.Builder
	b.WriteString("Matches:\n")
	for pos, rule := range rs.Snapshot.Rules {
		fmt.Fprintf(&b, "%s: %d\n", rule.Name, len(rs.ByRule[pos]))
	}
	return b.String()
}
