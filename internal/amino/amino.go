// Package amino provides the recognized amino-acid vocabulary and code
// normalization shared by rule validation and structure ingestion.
package amino

import (
	"strings"
)

// codes lists the 20 standard amino acids as (three-letter, one-letter) pairs.
var codes = [20][2]string{
	{"ALA", "A"},
	{"ARG", "R"},
	{"ASN", "N"},
	{"ASP", "D"},
	{"CYS", "C"},
	{"GLN", "Q"},
	{"GLU", "E"},
	{"GLY", "G"},
	{"HIS", "H"},
	{"ILE", "I"},
	{"LEU", "L"},
	{"LYS", "K"},
	{"MET", "M"},
	{"PHE", "F"},
	{"PRO", "P"},
	{"SER", "S"},
	{"THR", "T"},
	{"TRP", "W"},
	{"TYR", "Y"},
	{"VAL", "V"},
}

var byCode = func() map[string]string {
	m := make(map[string]string, len(codes)*2)
	for _, c := range codes {
		m[c[0]] = c[0]
		m[c[1]] = c[0]
	}
	return m
}()

// Canonical normalizes a residue-type code to its canonical three-letter
// upper-case form. Both three-letter and one-letter codes are accepted,
// case-insensitively. The second return value is false when the code is not
// in the recognized vocabulary.
func Canonical(code string) (string, bool) {
	canon, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return canon, ok
}

// IsValid reports whether the code belongs to the recognized vocabulary.
func IsValid(code string) bool {
	_, ok := Canonical(code)
	return ok
}

// Codes returns the canonical three-letter codes of the full vocabulary, in
// alphabetical order.
func Codes() []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = c[0]
	}
	return out
}
