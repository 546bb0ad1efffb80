package pdb

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atomLine(serial int, name, residue, chain string, seq int, x, y, z float64) string {
	return fmt.Sprintf("ATOM  %5d  %-3s %3s %s%4d    %8.3f%8.3f%8.3f  1.00  0.00",
		serial, name, residue, chain, seq, x, y, z)
}

func writePDB(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pdb")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600))
	return path
}

func TestRead_SingleImplicitModel(t *testing.T) {
	path := writePDB(t,
		atomLine(1, "N", "ALA", "A", 1, 10.0, 10.0, 10.0),
		atomLine(2, "CA", "ALA", "A", 1, 11.0, 10.0, 10.0),
		atomLine(3, "CA", "VAL", "A", 2, 14.0, 10.0, 10.0),
		"TER",
		atomLine(4, "CA", "GLY", "B", 1, 20.0, 20.0, 20.0),
	)

	structure, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "test", structure.Name)

	// Files without MODEL records get an implicit model 1.
	require.Len(t, structure.Models, 1)
	assert.Equal(t, []int{1}, structure.ModelSerials())

	m := structure.Models[0]
	assert.Equal(t, []string{"A", "B"}, m.ChainIDs())

	chainA, err := m.Chain("A")
	require.NoError(t, err)
	require.Len(t, chainA.Residues, 2)
	assert.Equal(t, "ALA", chainA.Residues[0].Name)
	assert.Len(t, chainA.Residues[0].Atoms, 2)
	require.NotNil(t, chainA.Residues[0].CA())
	assert.InDelta(t, 11.0, chainA.Residues[0].CA().X, 1e-9)
}

func TestRead_MultipleModels(t *testing.T) {
	path := writePDB(t,
		"MODEL        1",
		atomLine(1, "CA", "ALA", "A", 1, 1.0, 2.0, 3.0),
		"ENDMDL",
		"MODEL        2",
		atomLine(1, "CA", "ALA", "A", 1, 1.5, 2.5, 3.5),
		"ENDMDL",
	)

	structure, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, structure.ModelSerials())

	second, err := structure.Model(2)
	require.NoError(t, err)
	chain, err := second.Chain("A")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, chain.Residues[0].CA().X, 1e-9)

	_, err = structure.Model(3)
	assert.Error(t, err)
}

func TestRead_Gzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pdb.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(atomLine(1, "CA", "ALA", "A", 1, 1.0, 2.0, 3.0) + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	structure, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "test", structure.Name)
	require.Len(t, structure.Models, 1)
}

func TestRead_Errors(t *testing.T) {
	t.Run("no ATOM records", func(t *testing.T) {
		path := writePDB(t, "HEADER    PROTEIN")
		_, err := Read(path)
		assert.ErrorContains(t, err, "no ATOM records")
	})

	t.Run("short ATOM record", func(t *testing.T) {
		path := writePDB(t, "ATOM      1  CA  ALA A")
		_, err := Read(path)
		assert.ErrorContains(t, err, "line 1")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.pdb"))
		assert.Error(t, err)
	})
}

func TestChain_Records(t *testing.T) {
	path := writePDB(t,
		atomLine(1, "CA", "ALA", "A", 5, 1.0, 2.0, 3.0),
		atomLine(2, "N", "VAL", "A", 6, 4.0, 5.0, 6.0), // no CA atom
		atomLine(3, "CA", "UNK", "A", 7, 7.0, 8.0, 9.0), // not an amino acid
		atomLine(4, "CA", "LYS", "A", 8, 10.0, 11.0, 12.0),
	)

	structure, err := Read(path)
	require.NoError(t, err)
	chain, err := structure.Models[0].Chain("A")
	require.NoError(t, err)

	records := chain.Records()
	require.Len(t, records, 3, "unrecognized residue types are dropped")

	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, 5, records[0].SeqNum)
	assert.Equal(t, "ALA", records[0].Type)
	require.NotNil(t, records[0].CA)
	assert.InDelta(t, 3.0, records[0].CA.Z, 1e-9)

	// The CA-less residue keeps a nil coordinate so the matcher can report it.
	assert.Equal(t, "VAL", records[1].Type)
	assert.Nil(t, records[1].CA)

	assert.Equal(t, 2, records[2].Index)
	assert.Equal(t, "LYS", records[2].Type)
}

func TestRead_SkipsAlternateLocations(t *testing.T) {
	lineB := atomLine(2, "CA", "ALA", "A", 1, 9.0, 9.0, 9.0)
	// Force altloc 'B' into column 17.
	lineB = lineB[:16] + "B" + lineB[17:]

	path := writePDB(t,
		atomLine(1, "CA", "ALA", "A", 1, 1.0, 2.0, 3.0),
		lineB,
	)

	structure, err := Read(path)
	require.NoError(t, err)
	chain, err := structure.Models[0].Chain("A")
	require.NoError(t, err)
	require.Len(t, chain.Residues, 1)
	assert.Len(t, chain.Residues[0].Atoms, 1)
	assert.InDelta(t, 1.0, chain.Residues[0].CA().X, 1e-9)
}
