package model

// Match records one residue pair that satisfied at least one rule.
// RulePositions holds the snapshot positions of every rule the pair
// satisfied; a pair satisfying several rules still produces a single Match.
type Match struct {
	RulePositions []int   `json:"rule_positions"`
	ResidueA      Residue `json:"residue_a"`
	ResidueB      Residue `json:"residue_b"`
	Distance      float64 `json:"distance"`
}

// SatisfiesRule reports whether the match satisfied the rule at the given
// snapshot position.
func (m Match) SatisfiesRule(position int) bool {
	for _, p := range m.RulePositions {
		if p == position {
			return true
		}
	}
	return false
}
