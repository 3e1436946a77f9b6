package ancestry

import "fmt"

// Walk is a finite, consumed-once iterator over the mainline commits whose
// ancestry already contains the walk's target. Usage follows the
// bufio.Scanner idiom:
//
//	walk, err := g.FirstParentPath(target)
//	for walk.Next() {
//	    sha := walk.Sha()
//	}
//	err = walk.Err()
//
// Because containment only becomes true earlier in time and persists for
// all newer descendants, the yielded sequence, if non-empty, is exactly
// the tip-ward suffix of mainline commits containing the target; its last
// element is the oldest such commit, the point where the target was first
// incorporated.
type Walk struct {
	g      *Graph
	target string
	cur    string
	sha    string
	done   bool
	err    error
}

// FirstParentPath starts a mainline walk from the graph's tip for the
// given target commit. Fails with ErrDirectlyOnBranch when the target is
// the tip itself, and with ErrNotContained when the target is not in the
// graph at all.
func (g *Graph) FirstParentPath(target string) (*Walk, error) {
	if target == g.tip {
		return nil, fmt.Errorf("target %s is the branch tip: %w", target, ErrDirectlyOnBranch)
	}
	if !g.Contains(target) {
		return nil, fmt.Errorf("target %s: %w", target, ErrNotContained)
	}
	return &Walk{g: g, target: target, cur: g.tip}, nil
}

// Next advances to the next mainline commit containing the target,
// reporting false when the walk is exhausted or failed.
func (w *Walk) Next() bool {
	if w.done || w.err != nil {
		return false
	}

	targetRank := w.g.rank[w.target]
	for {
		curRank, ok := w.g.rank[w.cur]
		if !ok || curRank >= targetRank {
			// Reached or passed the target's age along the mainline.
			w.done = true
			return false
		}

		parents := w.g.parents[w.cur]
		if len(parents) == 0 {
			w.done = true
			return false
		}

		contained, err := w.g.IsAncestorOf(w.target, w.cur)
		if err != nil {
			w.err = err
			return false
		}

		sha := w.cur
		w.cur = parents[0] // mainline continuation only
		if contained {
			w.sha = sha
			return true
		}
	}
}

// Sha returns the commit yielded by the last successful Next call.
func (w *Walk) Sha() string {
	return w.sha
}

// Err returns the first error encountered during the walk, if any.
func (w *Walk) Err() error {
	return w.err
}
