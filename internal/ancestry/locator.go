package ancestry

import (
	"fmt"

	"github.com/yujunjiex/git-merge-checker/internal/git"
)

// FindMerge locates the merge commit that first incorporated target into
// the graph's branch: the unique oldest mainline commit whose ancestry
// contains target via a second-parent edge.
//
// Fails with ErrNotContained when target was never merged into the
// mainline, and with ErrDirectlyOnBranch when target sits on the mainline
// itself, meaning there is no three-way merge commit to point at.
// Repeated calls with the same target are idempotent.
func (g *Graph) FindMerge(target string) (git.Commit, error) {
	walk, err := g.FirstParentPath(target)
	if err != nil {
		return git.Commit{}, err
	}

	var path []string
	for walk.Next() {
		path = append(path, walk.Sha())
	}
	if err := walk.Err(); err != nil {
		return git.Commit{}, err
	}

	if len(path) == 0 {
		return git.Commit{}, fmt.Errorf("target %s: %w", target, ErrNotContained)
	}

	// The last yielded commit is the oldest mainline commit containing
	// the target. If the target is its first parent, the target is part
	// of the mainline rather than merged in via a side branch.
	last := path[len(path)-1]
	parents, err := g.ParentsOf(last)
	if err != nil {
		return git.Commit{}, err
	}
	if len(parents) > 0 && parents[0] == target {
		return git.Commit{}, fmt.Errorf("target %s: %w", target, ErrDirectlyOnBranch)
	}

	return g.InfoOf(last)
}
