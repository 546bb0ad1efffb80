// Package pdb reads protein structures from PDB files and exposes the
// model/chain/residue hierarchy the analysis run selects from.
package pdb

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/prip-bio/prip/internal/amino"
	"github.com/prip-bio/prip/internal/model"
)

// Atom is one ATOM record.
type Atom struct {
	Name    string
	Residue string
	Chain   string
	X       float64
	Y       float64
	Z       float64
	Serial  int
	SeqNum  int
	ICode   byte
	AltLoc  byte
}

// Residue groups the atoms sharing one residue number within a chain.
type Residue struct {
	Name   string
	Atoms  []*Atom
	SeqNum int
	ICode  byte
}

// CA returns the residue's alpha-carbon atom, or nil when absent.
func (r *Residue) CA() *Atom {
	for _, atom := range r.Atoms {
		if atom.Name == "CA" {
			return atom
		}
	}
	return nil
}

// Chain is an ordered sequence of residues sharing a chain identifier.
type Chain struct {
	ID       string
	Residues []*Residue
}

// Records converts the chain's amino-acid residues into the read-only records
// the matcher consumes, in chain order. Residue types are canonicalized;
// non-amino-acid residues (waters, ligands) are dropped. A residue without an
// alpha-carbon keeps a nil coordinate so the matcher can report it.
func (c *Chain) Records() []model.Residue {
	var records []model.Residue
	for _, res := range c.Residues {
		canon, ok := amino.Canonical(res.Name)
		if !ok {
			continue
		}

		record := model.Residue{
			Index:  len(records),
			SeqNum: res.SeqNum,
			Type:   canon,
		}
		if ca := res.CA(); ca != nil {
			record.CA = &r3.Vec{X: ca.X, Y: ca.Y, Z: ca.Z}
		}
		records = append(records, record)
	}
	return records
}

// Model is one structural model of the entry. X-ray structures usually carry
// a single model; NMR ensembles carry several.
type Model struct {
	Chains []*Chain
	Serial int
}

// Chain returns the chain with the given identifier.
func (m *Model) Chain(id string) (*Chain, error) {
	for _, chain := range m.Chains {
		if chain.ID == id {
			return chain, nil
		}
	}
	return nil, fmt.Errorf("chain %q not found in model %d", id, m.Serial)
}

// ChainIDs lists the model's chain identifiers in file order.
func (m *Model) ChainIDs() []string {
	ids := make([]string, len(m.Chains))
	for i, chain := range m.Chains {
		ids[i] = chain.ID
	}
	return ids
}

// Structure is a parsed PDB entry.
type Structure struct {
	Name   string
	Path   string
	Models []*Model
}

// Model returns the model with the given serial number.
func (s *Structure) Model(serial int) (*Model, error) {
	for _, m := range s.Models {
		if m.Serial == serial {
			return m, nil
		}
	}
	return nil, fmt.Errorf("model %d not found in %s", serial, s.Name)
}

// ModelSerials lists the structure's model serial numbers in file order.
func (s *Structure) ModelSerials() []int {
	serials := make([]int, len(s.Models))
	for i, m := range s.Models {
		serials[i] = m.Serial
	}
	return serials
}
