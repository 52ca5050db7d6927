package audit_test

import (
	"testing"

	"github.com/lockstead/recovery/internal/recovery/audit"
	"github.com/lockstead/recovery/pkg/answerhash"
	"github.com/stretchr/testify/require"
)

func legacyHash(t *testing.T, answer string) string {
	t.Helper()
	salt, err := answerhash.GenerateSalt()
	require.NoError(t, err)
	return answerhash.HashLegacy(answer, salt)
}

func TestTypoNeighborhoodSize(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"a", "gismo", "westminister"} {
		n := len(base)
		count := 0
		for range audit.TypoNeighborhood(base) {
			count++
		}
		// 26n substitutions + n deletions + 26(n+1) insertions
		require.Equal(t, 26*n+n+26*(n+1), count, "neighborhood size for %q", base)
		require.Equal(t, audit.NeighborhoodSize(n), count)
	}
}

func TestTypoNeighborhoodContainsSingleEdits(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for candidate := range audit.TypoNeighborhood("gismo") {
		seen[candidate] = true
	}

	require.True(t, seen["gizmo"], "substitution")
	require.True(t, seen["gismo"], "identity (substitution by the same letter)")
	require.True(t, seen["gsmo"], "deletion")
	require.True(t, seen["gismos"], "insertion")
	require.False(t, seen["gizmos"], "two edits away")
}

func TestSearchFindsCaseVariant(t *testing.T) {
	t.Parallel()

	stored := legacyHash(t, "gismo")

	result := audit.Search(stored, 0, audit.CaseVariants(" GiSmO "))
	require.True(t, result.Found)
	require.Equal(t, "gismo", result.Candidate)
	require.LessOrEqual(t, result.Tried, 6)
}

func TestSearchFindsTypoNeighbor(t *testing.T) {
	t.Parallel()

	// Registrant remembers "gizmo" but registered "gismo": one substitution
	// away.
	stored := legacyHash(t, "gismo")

	result := audit.Search(stored, 0, audit.TypoNeighborhood("gizmo"))
	require.True(t, result.Found)
	require.Equal(t, "gismo", result.Candidate)
}

func TestSearchFindsDictionaryWord(t *testing.T) {
	t.Parallel()

	stored := legacyHash(t, "lister")

	source, ok := audit.BuiltinDictionary("surnames")
	require.True(t, ok)

	result := audit.Search(stored, 0, source)
	require.True(t, result.Found)
	require.Equal(t, "lister", result.Candidate)
}

func TestSearchAgainstModernHash(t *testing.T) {
	t.Parallel()

	stored, err := answerhash.Hash("rex")
	require.NoError(t, err)

	source, ok := audit.BuiltinDictionary("pets")
	require.True(t, ok)

	result := audit.Search(stored, 0, source)
	require.True(t, result.Found)
	require.Equal(t, "rex", result.Candidate)
}

func TestSearchExhaustsAndReportsNone(t *testing.T) {
	t.Parallel()

	stored := legacyHash(t, "zzyzx")

	base := "gismo"
	result := audit.Search(stored, 0, audit.TypoNeighborhood(base))
	require.False(t, result.Found)
	require.Empty(t, result.Candidate)
	require.Equal(t, audit.NeighborhoodSize(len(base)), result.Tried)
}

func TestSearchHonorsBudget(t *testing.T) {
	t.Parallel()

	stored := legacyHash(t, "zzyzx")

	result := audit.Search(stored, 10, audit.TypoNeighborhood("westminister"))
	require.False(t, result.Found)
	require.Equal(t, 10, result.Tried)
}

func TestSearchShortCircuitsOnFirstMatch(t *testing.T) {
	t.Parallel()

	stored := legacyHash(t, "gismo")

	// "gismo" is the fifth word; the search must stop there.
	result := audit.Search(stored, 0, audit.Dictionary([]string{"a", "b", "c", "d", "gismo", "e"}))
	require.True(t, result.Found)
	require.Equal(t, 5, result.Tried)
}

func TestSearchComposesSourcesInOrder(t *testing.T) {
	t.Parallel()

	stored := legacyHash(t, "gismo")

	result := audit.Search(stored, 0,
		audit.CaseVariants("wrong"),
		audit.Dictionary([]string{"nope"}),
		audit.TypoNeighborhood("gizmo"),
	)
	require.True(t, result.Found)
	require.Equal(t, "gismo", result.Candidate)
	// All candidates of the cheaper sources were attempted first.
	require.Greater(t, result.Tried, 7)
}

func TestBuiltinDictionaryCategories(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"pets", "streets", "surnames"}, audit.Categories())

	_, ok := audit.BuiltinDictionary("colors")
	require.False(t, ok)
}
