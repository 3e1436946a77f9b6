package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tsCommit(sha string, minute int, parents ...string) Commit {
	return Commit{
		Sha:     sha,
		Parents: parents,
		When:    time.Date(2025, 1, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestSortAncestryPath_Linear(t *testing.T) {
	commits := []Commit{
		tsCommit("a", 0),
		tsCommit("b", 1, "a"),
		tsCommit("c", 2, "b"),
	}

	ordered, err := SortAncestryPath("c", commits)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, shas(ordered))
}

func TestSortAncestryPath_ChildrenBeforeParents(t *testing.T) {
	// Diamond: m merges f into the mainline after c.
	commits := []Commit{
		tsCommit("a", 0),
		tsCommit("c", 1, "a"),
		tsCommit("f", 2, "a"),
		tsCommit("m", 3, "c", "f"),
	}

	ordered, err := SortAncestryPath("m", commits)
	require.NoError(t, err)

	pos := positions(ordered)
	require.Equal(t, 0, pos["m"])
	require.Less(t, pos["m"], pos["c"])
	require.Less(t, pos["m"], pos["f"])
	require.Less(t, pos["c"], pos["a"])
	require.Less(t, pos["f"], pos["a"])
}

func TestSortAncestryPath_ClockSkew(t *testing.T) {
	// b claims to be older than its parent a; topology must still win.
	commits := []Commit{
		tsCommit("a", 5),
		tsCommit("b", 0, "a"),
		tsCommit("c", 10, "b"),
	}

	ordered, err := SortAncestryPath("c", commits)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, shas(ordered))
}

func TestSortAncestryPath_DropsUnreachable(t *testing.T) {
	commits := []Commit{
		tsCommit("a", 0),
		tsCommit("b", 1, "a"),
		tsCommit("c", 2, "b"),
		tsCommit("stray", 3), // not an ancestor of c
	}

	ordered, err := SortAncestryPath("c", commits)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, shas(ordered))
}

func TestSortAncestryPath_DanglingParentTolerated(t *testing.T) {
	// A truncated window: b's parent was not fetched.
	commits := []Commit{
		tsCommit("b", 1, "missing"),
		tsCommit("c", 2, "b"),
	}

	ordered, err := SortAncestryPath("c", commits)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, shas(ordered))
}

func TestSortAncestryPath_MissingTip(t *testing.T) {
	_, err := SortAncestryPath("zzz", []Commit{tsCommit("a", 0)})
	require.Error(t, err)
}

func TestSortAncestryPath_NewestFirstTieBreak(t *testing.T) {
	// Two independent parents of the tip become ready at once; the newer
	// one must come out first.
	commits := []Commit{
		tsCommit("a", 0),
		tsCommit("old", 1, "a"),
		tsCommit("new", 8, "a"),
		tsCommit("m", 9, "new", "old"),
	}

	ordered, err := SortAncestryPath("m", commits)
	require.NoError(t, err)
	require.Equal(t, []string{"m", "new", "old", "a"}, shas(ordered))
}

func shas(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Sha
	}
	return out
}

func positions(commits []Commit) map[string]int {
	pos := make(map[string]int, len(commits))
	for i, c := range commits {
		pos[c.Sha] = i
	}
	return pos
}
