// Package checker orchestrates a merge-check run: it resolves the target
// branch, builds its ancestry-path graph, enumerates the remote tracking
// branches, and classifies each branch tip as merged, merged directly, or
// not merged.
package checker

import (
	"errors"
	"fmt"

	"github.com/yujunjiex/git-merge-checker/internal/ancestry"
	"github.com/yujunjiex/git-merge-checker/internal/filter"
	"github.com/yujunjiex/git-merge-checker/internal/git"
)

// State classifies how a branch tip relates to the target mainline.
type State int

const (
	// StateMerged means the branch tip was incorporated via a three-way
	// merge commit.
	StateMerged State = iota

	// StateMergedDirectly means the branch tip sits on the target's
	// mainline itself; it is merged, but there is no merge commit and
	// therefore no determinable merge time.
	StateMergedDirectly

	// StateNotMerged means the branch tip is not in the target's
	// ancestry.
	StateNotMerged
)

func (s State) String() string {
	switch s {
	case StateMerged:
		return "merged"
	case StateMergedDirectly:
		return "merged directly"
	case StateNotMerged:
		return "not merged"
	default:
		return "unknown"
	}
}

// Result is the outcome for one remote branch.
type Result struct {
	Branch git.Branch
	State  State

	// MergeCommit is the three-way merge commit that brought the branch
	// in. Only set for StateMerged.
	MergeCommit git.Commit

	// MergedVia is the branch name parsed from the merge commit message,
	// when the message matches a known merge format.
	MergedVia string
}

// Report is the outcome of one merge-check run against one target branch.
type Report struct {
	// Target is the display name of the target branch.
	Target string

	// TargetTip is the resolved tip commit of the target branch.
	TargetTip git.Commit

	// Results holds one entry per checked remote branch, sorted by
	// branch name.
	Results []Result
}

// Options configures a merge-check run.
type Options struct {
	// Target is the target branch expression. Empty means the current
	// HEAD branch.
	Target string

	// Patterns restricts the checked branches by glob match on their
	// friendly name. Empty means all remote branches.
	Patterns []string
}

// Checker runs merge checks against a repository.
type Checker struct {
	store *git.RepositoryStore
}

// New creates a Checker on top of the given store.
func New(store *git.RepositoryStore) *Checker {
	return &Checker{store: store}
}

// Run performs one merge-check run. An unresolvable target fails the whole
// run before any branch is processed; per-branch non-merge conditions are
// folded into the report.
func (c *Checker) Run(opts Options) (*Report, error) {
	f, err := filter.New(opts.Patterns)
	if err != nil {
		return nil, err
	}

	tip, name, err := c.store.ResolveTarget(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("resolving target branch: %w", err)
	}

	commits, err := c.store.AncestryPath(tip)
	if err != nil {
		return nil, fmt.Errorf("building ancestry path for %s: %w", name, err)
	}

	graph, err := ancestry.Build(tip, commits)
	if err != nil {
		return nil, fmt.Errorf("indexing ancestry path for %s: %w", name, err)
	}

	branches, err := c.store.RemoteBranchTips(f.Matches)
	if err != nil {
		return nil, err
	}

	report := &Report{Target: name}
	if info, err := graph.InfoOf(tip); err == nil {
		report.TargetTip = info
	}

	for _, b := range branches {
		result, err := c.checkBranch(graph, b)
		if err != nil {
			return nil, fmt.Errorf("checking branch %s: %w", b.FriendlyName(), err)
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// checkBranch classifies one branch tip against the target graph.
// ErrNotContained and ErrDirectlyOnBranch are expected per-branch
// outcomes; anything else is a defect and propagates.
func (c *Checker) checkBranch(graph *ancestry.Graph, b git.Branch) (Result, error) {
	result := Result{Branch: b}

	merge, err := graph.FindMerge(b.Tip.Sha)
	switch {
	case err == nil:
		result.State = StateMerged
		result.MergeCommit = merge
		if msg := git.ParseMergeMessage(merge.Message); !msg.IsEmpty() {
			result.MergedVia = msg.MergedBranch
		}
	case errors.Is(err, ancestry.ErrDirectlyOnBranch):
		result.State = StateMergedDirectly
	case errors.Is(err, ancestry.ErrNotContained):
		result.State = StateNotMerged
	default:
		return Result{}, err
	}

	return result, nil
}
