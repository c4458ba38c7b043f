package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/testutil"
)

func unitsOf(commits []model.Commit) []model.PRUnit {
	return Detect(commits, nil)
}

func TestResolve_ExactUnitID(t *testing.T) {
	units := []model.PRUnit{
		{Type: model.UnitSingle, ID: "ab12cd34"},
		{Type: model.UnitSingle, ID: "ab12cd34ef"},
	}

	unit, err := Resolve("ab12cd34", units, nil)
	require.NoError(t, err)
	assert.Equal(t, "ab12cd34", unit.ID,
		"exact match takes precedence even when a longer id would also prefix-match")
}

func TestResolve_UniqueUnitIDPrefix(t *testing.T) {
	units := []model.PRUnit{{Type: model.UnitSingle, ID: "ab12cd34"}}

	unit, err := Resolve("ab", units, nil)
	require.NoError(t, err)
	assert.Equal(t, "ab12cd34", unit.ID)
}

func TestResolve_AmbiguousUnitIDPrefix(t *testing.T) {
	units := []model.PRUnit{
		{Type: model.UnitSingle, ID: "ab111111"},
		{Type: model.UnitSingle, ID: "ab222222"},
	}

	_, err := Resolve("ab", units, nil)
	require.Error(t, err)
	require.True(t, IsAmbiguous(err))

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"ab111111", "ab222222"}, ambiguous.Matches)
}

func TestResolve_CommitHashPrefixResolvesToContainingUnit(t *testing.T) {
	commits := testutil.Seq(
		testutil.C("deadbeef001122334455", "A").ID("a1a1a1a1").Group("g1"),
		testutil.C("cafe0000998877665544", "B").ID("b2b2b2b2").Group("g1"),
		testutil.C("face1111223344556677", "C").ID("c3c3c3c3"),
	)
	units := unitsOf(commits)

	unit, err := Resolve("cafe", units, commits)
	require.NoError(t, err)
	assert.Equal(t, model.UnitGroup, unit.Type)
	assert.Equal(t, "g1", unit.ID, "a group member resolves to the group, not a synthetic single")
}

func TestResolve_AmbiguousHashPrefixListsShortForms(t *testing.T) {
	commits := testutil.Seq(
		testutil.C("deadbeef001122334455", "A").ID("a1a1a1a1"),
		testutil.C("deadbeef998877665544", "B").ID("b2b2b2b2"),
	)
	units := unitsOf(commits)

	_, err := Resolve("deadbeef0011223344", units, commits)
	// Only one hash matches this long prefix; shorten to force ambiguity.
	require.NoError(t, err)

	_, err = Resolve("deadbeef", units, commits)
	require.Error(t, err)

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"deadbeef", "deadbeef"}, ambiguous.Matches,
		"hash matches listed in 8-char short form")
}

func TestResolve_NotFound(t *testing.T) {
	units := []model.PRUnit{{Type: model.UnitSingle, ID: "ab12cd34"}}

	_, err := Resolve("zz", units, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "zz")
}

func TestResolve_Deterministic(t *testing.T) {
	commits := testutil.Seq(
		testutil.C("deadbeef001122334455", "A").ID("a1a1a1a1"),
	)
	units := unitsOf(commits)

	first, err1 := Resolve("a1", units, commits)
	second, err2 := Resolve("a1", units, commits)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second, "same inputs always yield the same resolution")
}

func TestResolveMany_CollectsAllErrors(t *testing.T) {
	commits := testutil.Seq(
		testutil.C("aaa1111111", "A").ID("a1a1a1a1"),
		testutil.C("bbb2222222", "B").ID("b2b2b2b2"),
	)
	units := unitsOf(commits)

	ids, errs := ResolveMany([]string{"nope", "a1a1a1a1", "alsonope", "b2"}, units, commits)
	assert.Equal(t, []string{"a1a1a1a1", "b2b2b2b2"}, ids,
		"resolvable identifiers survive earlier failures")
	require.Len(t, errs, 2, "one error per individually failing identifier")
	assert.True(t, IsNotFound(errs[0]))
	assert.True(t, IsNotFound(errs[1]))
}

func TestResolveMany_Deduplicates(t *testing.T) {
	commits := testutil.Seq(
		testutil.C("aaa1111111", "A").ID("a1a1a1a1").Group("g1"),
		testutil.C("bbb2222222", "B").ID("b2b2b2b2").Group("g1"),
	)
	units := unitsOf(commits)

	ids, errs := ResolveMany([]string{"a1a1a1a1", "b2b2b2b2", "g1"}, units, commits)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"g1"}, ids, "three identifiers naming one group dedupe to one id")
}

func TestResolveUpTo(t *testing.T) {
	commits := testutil.Seq(
		testutil.C("aaa1111111", "A").ID("a1a1a1a1"),
		testutil.C("bbb2222222", "B").ID("b2b2b2b2").Group("g1"),
		testutil.C("ccc3333333", "C").ID("c3c3c3c3").Group("g1"),
		testutil.C("ddd4444444", "D").ID("d4d4d4d4"),
	)
	units := unitsOf(commits)

	ids, err := ResolveUpTo("g1", units, commits)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1a1a1a1", "g1"}, ids,
		"bottom of the stack through the target inclusive")
}

func TestResolveUpTo_PropagatesResolutionError(t *testing.T) {
	_, err := ResolveUpTo("nope", nil, nil)
	assert.True(t, IsNotFound(err))
}
