package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Read parses a PDB file into its model/chain/residue hierarchy. Gzipped
// files (.gz) are decompressed transparently.
func Read(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDB file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if filepath.Ext(path) == ".gz" {
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return nil, fmt.Errorf("failed to open gzipped PDB file: %w", gzErr)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	structure, err := parse(reader, name)
	if err != nil {
		return nil, err
	}
	structure.Path = path
	return structure, nil
}

type parser struct {
	structure *Structure
	current   *Model
	lineNum   int
}

func parse(reader io.Reader, name string) (*Structure, error) {
	p := &parser{structure: &Structure{Name: name}}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024), 1024)
	for scanner.Scan() {
		p.lineNum++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read PDB file: %w", err)
	}

	if len(p.structure.Models) == 0 {
		return nil, fmt.Errorf("%s does not appear to be a valid PDB file: no ATOM records", name)
	}
	return p.structure, nil
}

func (p *parser) parseLine(line string) error {
	switch {
	case strings.HasPrefix(line, "MODEL "):
		if len(line) < 14 {
			return fmt.Errorf("short MODEL record")
		}
		serial, err := strconv.Atoi(strings.TrimSpace(columns(line, 11, 14)))
		if err != nil {
			return fmt.Errorf("bad MODEL record: %w", err)
		}
		p.current = &Model{Serial: serial}
		p.structure.Models = append(p.structure.Models, p.current)
	case strings.HasPrefix(line, "ENDMDL"):
		p.current = nil
	case strings.HasPrefix(line, "ATOM  "):
		return p.parseAtom(line)
	}
	return nil
}

// parseAtom reads the fixed columns of an ATOM record, per the wwPDB format
// (section 9). Alternate locations other than ' ' and 'A' are skipped.
func (p *parser) parseAtom(line string) error {
	if len(line) < 54 {
		return fmt.Errorf("short ATOM record (%d columns)", len(line))
	}

	atom := &Atom{
		Name:    strings.TrimSpace(columns(line, 13, 16)),
		AltLoc:  line[16],
		Residue: strings.TrimSpace(columns(line, 18, 20)),
		Chain:   columns(line, 22, 22),
		ICode:   line[26],
	}
	if atom.AltLoc != ' ' && atom.AltLoc != 'A' {
		return nil
	}

	var err error
	if atom.Serial, err = strconv.Atoi(strings.TrimSpace(columns(line, 7, 11))); err != nil {
		return fmt.Errorf("bad atom serial: %w", err)
	}
	if atom.SeqNum, err = strconv.Atoi(strings.TrimSpace(columns(line, 23, 26))); err != nil {
		return fmt.Errorf("bad residue number: %w", err)
	}
	if atom.X, err = strconv.ParseFloat(strings.TrimSpace(columns(line, 31, 38)), 64); err != nil {
		return fmt.Errorf("bad x coordinate: %w", err)
	}
	if atom.Y, err = strconv.ParseFloat(strings.TrimSpace(columns(line, 39, 46)), 64); err != nil {
		return fmt.Errorf("bad y coordinate: %w", err)
	}
	if atom.Z, err = strconv.ParseFloat(strings.TrimSpace(columns(line, 47, 54)), 64); err != nil {
		return fmt.Errorf("bad z coordinate: %w", err)
	}

	p.model().add(atom)
	return nil
}

// model returns the model atoms are currently being added to, creating the
// implicit model 1 for files without MODEL records.
func (p *parser) model() *Model {
	if p.current == nil {
		p.current = &Model{Serial: 1}
		p.structure.Models = append(p.structure.Models, p.current)
	}
	return p.current
}

// add appends an atom to its chain and residue, creating both as needed.
// Atoms arrive in file order, so appending preserves chain order.
func (m *Model) add(atom *Atom) {
	var chain *Chain
	for _, c := range m.Chains {
		if c.ID == atom.Chain {
			chain = c
			break
		}
	}
	if chain == nil {
		chain = &Chain{ID: atom.Chain}
		m.Chains = append(m.Chains, chain)
	}

	if n := len(chain.Residues); n > 0 {
		last := chain.Residues[n-1]
		if last.SeqNum == atom.SeqNum && last.ICode == atom.ICode {
			last.Atoms = append(last.Atoms, atom)
			return
		}
	}
	chain.Residues = append(chain.Residues, &Residue{
		Name:   atom.Residue,
		SeqNum: atom.SeqNum,
		ICode:  atom.ICode,
		Atoms:  []*Atom{atom},
	})
}

// columns returns the 1-indexed inclusive column range of a record line, the
// convention the PDB format specification uses.
func columns(line string, from, to int) string {
	return line[from-1 : to]
}
