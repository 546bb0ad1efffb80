package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/prip-bio/prip/internal/model"
)

func res(index int, typ string, x, y, z float64) model.Residue {
	return model.Residue{
		Index:  index,
		SeqNum: index + 1,
		Type:   typ,
		CA:     &r3.Vec{X: x, Y: y, Z: z},
	}
}

func rule(name string, groupA, groupB []string, maxDistance float64) model.Rule {
	return model.Rule{
		Name:        name,
		GroupA:      groupA,
		GroupB:      groupB,
		MaxDistance: maxDistance,
		Comparison:  string(model.ComparisonWithin),
	}
}

func TestMatcher_EndToEnd(t *testing.T) {
	ctx := context.Background()

	residues := []model.Residue{
		res(0, "ALA", 0, 0, 0),
		res(1, "ASP", 3, 0, 0),
		res(2, "LYS", 3, 4, 0),
	}
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"ALA"}, []string{"ASP", "LYS"}, 5.0),
	})

	matches, err := NewMatcher(snapshot).FindInteractions(ctx, residues)
	require.NoError(t, err)

	// Pair (0,1) at 3.0 and pair (0,2) at exactly 5.0 match; pair (1,2) at
	// 4.0 is ASP/LYS, which the rule's group combination does not cover.
	require.Len(t, matches, 2)

	assert.Equal(t, 0, matches[0].ResidueA.Index)
	assert.Equal(t, 1, matches[0].ResidueB.Index)
	assert.InDelta(t, 3.0, matches[0].Distance, 1e-12)
	assert.Equal(t, []int{0}, matches[0].RulePositions)

	assert.Equal(t, 0, matches[1].ResidueA.Index)
	assert.Equal(t, 2, matches[1].ResidueB.Index)
	assert.InDelta(t, 5.0, matches[1].Distance, 1e-12)
	assert.Equal(t, []int{0}, matches[1].RulePositions)
}

func TestMatcher_InclusiveThreshold(t *testing.T) {
	ctx := context.Background()
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"ALA"}, []string{"VAL"}, 5.0),
	})

	t.Run("distance exactly at threshold matches", func(t *testing.T) {
		matches, err := NewMatcher(snapshot).FindInteractions(ctx, []model.Residue{
			res(0, "ALA", 0, 0, 0),
			res(1, "VAL", 5, 0, 0),
		})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.InDelta(t, 5.0, matches[0].Distance, 1e-12)
	})

	t.Run("distance just above threshold does not match", func(t *testing.T) {
		matches, err := NewMatcher(snapshot).FindInteractions(ctx, []model.Residue{
			res(0, "ALA", 0, 0, 0),
			res(1, "VAL", 5.000001, 0, 0),
		})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestMatcher_GroupOrderSymmetry(t *testing.T) {
	ctx := context.Background()
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"LYS"}, []string{"GLU"}, 10.0),
	})
	matcher := NewMatcher(snapshot)

	// The pair matches regardless of which residue has the lower index.
	lysFirst, err := matcher.FindInteractions(ctx, []model.Residue{
		res(0, "LYS", 0, 0, 0),
		res(1, "GLU", 4, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, lysFirst, 1)

	gluFirst, err := matcher.FindInteractions(ctx, []model.Residue{
		res(0, "GLU", 0, 0, 0),
		res(1, "LYS", 4, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, gluFirst, 1)
}

func TestMatcher_ExaminesAllPairs(t *testing.T) {
	ctx := context.Background()

	// A rule every pair satisfies turns the output into a pair census.
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"GLY"}, []string{"GLY"}, 1e6),
	})

	const n = 25
	residues := make([]model.Residue, n)
	for i := range residues {
		residues[i] = res(i, "GLY", float64(i), float64(i*2), float64(i*3))
	}

	matches, err := NewMatcher(snapshot).FindInteractions(ctx, residues)
	require.NoError(t, err)
	assert.Len(t, matches, n*(n-1)/2)

	// Chain order: i ascending, then j ascending, never sorted by distance.
	for k := 1; k < len(matches); k++ {
		prev, cur := matches[k-1], matches[k]
		inOrder := cur.ResidueA.Index > prev.ResidueA.Index ||
			(cur.ResidueA.Index == prev.ResidueA.Index && cur.ResidueB.Index > prev.ResidueB.Index)
		assert.True(t, inOrder, "match %d out of chain order", k)
	}
}

func TestMatcher_OverlappingGroups(t *testing.T) {
	ctx := context.Background()

	// Both groups contain ALA: an ALA-ALA pair is allowed to match, but a
	// residue is never paired with itself.
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"ALA"}, []string{"ALA", "VAL"}, 10.0),
	})

	matches, err := NewMatcher(snapshot).FindInteractions(ctx, []model.Residue{
		res(0, "ALA", 0, 0, 0),
		res(1, "ALA", 3, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].ResidueA.Index)
	assert.Equal(t, 1, matches[0].ResidueB.Index)
}

func TestMatcher_MultipleRulesSinglePair(t *testing.T) {
	ctx := context.Background()
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Wide", []string{"ALA"}, []string{"VAL"}, 10.0),
		rule("Unrelated", []string{"CYS"}, []string{"CYS"}, 10.0),
		rule("Narrow", []string{"ALA"}, []string{"VAL"}, 4.0),
	})

	matches, err := NewMatcher(snapshot).FindInteractions(ctx, []model.Residue{
		res(0, "ALA", 0, 0, 0),
		res(1, "VAL", 3, 0, 0),
	})
	require.NoError(t, err)

	// One match carrying every satisfied rule position.
	require.Len(t, matches, 1)
	assert.Equal(t, []int{0, 2}, matches[0].RulePositions)
}

func TestMatcher_MissingCoordinate(t *testing.T) {
	ctx := context.Background()
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"ALA"}, []string{"VAL"}, 5.0),
	})

	residues := []model.Residue{
		res(0, "ALA", 0, 0, 0),
		{Index: 1, SeqNum: 2, Type: "VAL"}, // no CA
		res(2, "ALA", 1, 0, 0),
	}

	matches, err := NewMatcher(snapshot).FindInteractions(ctx, residues)
	assert.Nil(t, matches, "no partial results on a malformed residue")

	var missing *MissingCoordinateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 1, missing.Index)
	assert.Equal(t, "VAL", missing.Type)
}

func TestMatcher_Deterministic(t *testing.T) {
	ctx := context.Background()
	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"ALA", "GLY"}, []string{"VAL", "GLY"}, 8.0),
	})

	residues := []model.Residue{
		res(0, "ALA", 0, 0, 0),
		res(1, "GLY", 2, 1, 0),
		res(2, "VAL", 4, 0, 3),
		res(3, "GLY", 1, 5, 2),
	}

	matcher := NewMatcher(snapshot)
	first, err := matcher.FindInteractions(ctx, residues)
	require.NoError(t, err)
	second, err := matcher.FindInteractions(ctx, residues)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatcher_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot := model.NewSnapshot([]model.Rule{
		rule("Rule 1", []string{"ALA"}, []string{"ALA"}, 5.0),
	})
	_, err := NewMatcher(snapshot).FindInteractions(ctx, []model.Residue{
		res(0, "ALA", 0, 0, 0),
		res(1, "ALA", 1, 0, 0),
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatcher_NoRules(t *testing.T) {
	ctx := context.Background()

	matches, err := NewMatcher(model.NewSnapshot(nil)).FindInteractions(ctx, []model.Residue{
		res(0, "ALA", 0, 0, 0),
		res(1, "ALA", 1, 0, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}
