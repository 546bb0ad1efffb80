// Package model defines the core data structures for the prip application.
package model

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Residue is one amino-acid unit of the selected chain, reduced to what the
// interaction scan needs: a stable position, a canonical three-letter type and
// the location of its alpha-carbon. CA is nil when the structure supplied no
// alpha-carbon for the residue.
type Residue struct {
	CA     *r3.Vec `json:"ca,omitempty"`
	Type   string  `json:"type"`
	Index  int     `json:"index"`
	SeqNum int     `json:"seq_num"`
}
