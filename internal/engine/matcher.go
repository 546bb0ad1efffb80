// Package engine implements the pairwise interaction scan and the grouping
// of its results for presentation and export.
package engine

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/prip-bio/prip/internal/model"
)

// MissingCoordinateError reports a residue record without an alpha-carbon
// coordinate. The run is aborted rather than producing partial results.
type MissingCoordinateError struct {
	Type  string
	Index int
}

func (e *MissingCoordinateError) Error() string {
	return fmt.Sprintf("residue %d (%s) has no alpha-carbon coordinate", e.Index, e.Type)
}

// ruleSets is a rule pre-resolved into membership sets for O(1) type checks.
type ruleSets struct {
	groupA      map[string]struct{}
	groupB      map[string]struct{}
	maxDistance float64
}

// Matcher evaluates residue pairs against a frozen rule snapshot.
type Matcher struct {
	// Progress, when set, is called after each completed outer row of the
	// pair scan with the number of rows done and the total row count.
	Progress func(done, total int)

	sets []ruleSets
}

// NewMatcher creates a matcher for the given snapshot, pre-resolving each
// rule's groups into membership sets.
func NewMatcher(snapshot model.Snapshot) *Matcher {
	m := &Matcher{sets: make([]ruleSets, snapshot.Len())}
	for i, rule := range snapshot.Rules {
		rs := ruleSets{
			groupA:      make(map[string]struct{}, len(rule.GroupA)),
			groupB:      make(map[string]struct{}, len(rule.GroupB)),
			maxDistance: rule.MaxDistance,
		}
		for _, code := range rule.GroupA {
			rs.groupA[code] = struct{}{}
		}
		for _, code := range rule.GroupB {
			rs.groupB[code] = struct{}{}
		}
		m.sets[i] = rs
	}
	return m
}

// FindInteractions enumerates every unordered residue pair (i < j), computes
// the CA-CA distance once per pair, and returns the pairs satisfying at least
// one rule, in chain order (i ascending, then j ascending). The threshold is
// inclusive: a distance exactly equal to a rule's maximum counts as a match.
// Cancellation is checked between outer-loop rows.
func (m *Matcher) FindInteractions(ctx context.Context, residues []model.Residue) ([]model.Match, error) {
	for _, res := range residues {
		if res.CA == nil {
			return nil, &MissingCoordinateError{Index: res.Index, Type: res.Type}
		}
	}

	var matches []model.Match
	for i := range residues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a := residues[i]
		for j := i + 1; j < len(residues); j++ {
			b := residues[j]
			distance := r3.Norm(r3.Sub(*a.CA, *b.CA))

			var positions []int
			for pos, rs := range m.sets {
				if satisfies(rs, a.Type, b.Type, distance) {
					positions = append(positions, pos)
				}
			}

			if len(positions) > 0 {
				matches = append(matches, model.Match{
					ResidueA:      a,
					ResidueB:      b,
					Distance:      distance,
					RulePositions: positions,
				})
			}
		}

		if m.Progress != nil {
			m.Progress(i+1, len(residues))
		}
	}

	return matches, nil
}

// satisfies checks distance and group membership. Membership is checked in
// both orientations: only the i<j index order of a pair is fixed, not which
// residue belongs to which group.
func satisfies(rs ruleSets, typeA, typeB string, distance float64) bool {
	if distance > rs.maxDistance {
		return false
	}

	_, aInA := rs.groupA[typeA]
	_, bInB := rs.groupB[typeB]
	if aInA && bInB {
		return true
	}

	_, aInB := rs.groupB[typeA]
	_, bInA := rs.groupA[typeB]
	return aInB && bInA
}
