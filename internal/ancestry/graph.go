// Package ancestry implements the commit-ancestry model used to locate
// merge points. An ancestry-path graph is a bounded view of one branch's
// history, every commit reachable from the branch tip back to the
// repository's first commit, annotated with a strict topological rank.
// On top of it sit a rank-pruned reachability check, a first-parent
// mainline walk, and the merge locator that together answer "was this
// commit merged into that branch, and via which merge commit?".
package ancestry

import (
	"errors"
	"fmt"

	"github.com/yujunjiex/git-merge-checker/internal/git"
)

var (
	// ErrNotFound indicates a graph lookup for a hash that should be
	// present. It signals a construction invariant violation and is
	// treated as a defect, not a normal outcome.
	ErrNotFound = errors.New("commit not present in ancestry graph")

	// ErrNotContained indicates the probed commit is not in the branch's
	// ancestry path at all. Callers recover it per branch and report the
	// branch as not merged.
	ErrNotContained = errors.New("commit not contained in branch ancestry")

	// ErrDirectlyOnBranch indicates the probed commit sits on the
	// branch's mainline itself, so no merge commit exists for it.
	ErrDirectlyOnBranch = errors.New("commit lies directly on the branch mainline")
)

// Graph is the ancestry-path view of one branch's history, scoped to the
// branch tip it was built for. Read-only after construction except for the
// reachability memo cache, which is owned by the graph and never shared
// across branches.
type Graph struct {
	tip     string
	parents map[string][]string
	info    map[string]git.Commit
	rank    map[string]int

	// Reachability memo, valid for one target at a time.
	memo       map[string]bool
	memoTarget string
}

// Build indexes the newest-first ancestry-path sequence for tip. The
// sequence must start at tip and be topologically ordered: every commit
// appears before any of its parents. Ranks are assigned in sequence
// starting at 1, so rank 1 is the tip and rank grows with age; for any
// strict ancestor A of B in the graph, rank(A) > rank(B).
func Build(tip string, commits []git.Commit) (*Graph, error) {
	if len(commits) == 0 {
		return nil, fmt.Errorf("empty ancestry path for tip %s", tip)
	}
	if commits[0].Sha != tip {
		return nil, fmt.Errorf("ancestry path starts at %s, want tip %s", commits[0].Sha, tip)
	}

	g := &Graph{
		tip:     tip,
		parents: make(map[string][]string, len(commits)),
		info:    make(map[string]git.Commit, len(commits)),
		rank:    make(map[string]int, len(commits)),
		memo:    make(map[string]bool),
	}

	for i, c := range commits {
		if _, dup := g.rank[c.Sha]; dup {
			return nil, fmt.Errorf("duplicate commit %s in ancestry path", c.Sha)
		}
		g.parents[c.Sha] = c.Parents
		g.info[c.Sha] = c
		g.rank[c.Sha] = i + 1
	}

	return g, nil
}

// Tip returns the branch tip the graph was built for.
func (g *Graph) Tip() string {
	return g.tip
}

// Size returns the number of commits in the graph.
func (g *Graph) Size() int {
	return len(g.rank)
}

// Contains reports whether sha is present in the graph.
func (g *Graph) Contains(sha string) bool {
	_, ok := g.parents[sha]
	return ok
}

// ParentsOf returns the parent SHAs of sha.
func (g *Graph) ParentsOf(sha string) ([]string, error) {
	parents, ok := g.parents[sha]
	if !ok {
		return nil, fmt.Errorf("parents of %s: %w", sha, ErrNotFound)
	}
	return parents, nil
}

// InfoOf returns the full Commit record for sha.
func (g *Graph) InfoOf(sha string) (git.Commit, error) {
	info, ok := g.info[sha]
	if !ok {
		return git.Commit{}, fmt.Errorf("info of %s: %w", sha, ErrNotFound)
	}
	return info, nil
}

// RankOf returns the topological rank of sha (1 = tip, larger = older).
func (g *Graph) RankOf(sha string) (int, error) {
	rank, ok := g.rank[sha]
	if !ok {
		return 0, fmt.Errorf("rank of %s: %w", sha, ErrNotFound)
	}
	return rank, nil
}
