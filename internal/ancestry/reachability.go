package ancestry

import "fmt"

// IsAncestorOf reports whether target is an ancestor of, or identical to,
// probe, restricted to commits inside the graph. Results are memoized per
// probe for as long as the target stays the same, so repeated queries
// against one target (as the mainline walk issues) cost linear time in
// graph size overall rather than re-walking shared history.
//
// The evaluation uses an explicit stack instead of call recursion: the
// parent chain between probe and target can be as long as the history
// itself.
func (g *Graph) IsAncestorOf(target, probe string) (bool, error) {
	targetRank, ok := g.rank[target]
	if !ok {
		return false, fmt.Errorf("reachability target %s: %w", target, ErrNotFound)
	}
	if _, ok := g.rank[probe]; !ok {
		return false, fmt.Errorf("reachability probe %s: %w", probe, ErrNotFound)
	}

	// The memo is only sound for a fixed target.
	if g.memoTarget != target {
		g.memo = make(map[string]bool)
		g.memoTarget = target
	}

	stack := []string{probe}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		if _, done := g.memo[cur]; done {
			stack = stack[:len(stack)-1]
			continue
		}

		curRank := g.rank[cur]
		switch {
		case curRank > targetRank:
			// cur is strictly older than target; an older commit cannot
			// have a newer one in its ancestry.
			g.memo[cur] = false
			stack = stack[:len(stack)-1]

		case curRank == targetRank:
			// Ranks are unique, so this is the target itself.
			g.memo[cur] = true
			stack = stack[:len(stack)-1]

		default:
			contained := false
			var pending []string
			for _, p := range g.parents[cur] {
				if _, in := g.rank[p]; !in {
					// Parent outside the ancestry path; only commits
					// inside the graph participate.
					continue
				}
				if v, done := g.memo[p]; done {
					if v {
						contained = true
						break
					}
					continue
				}
				pending = append(pending, p)
			}

			switch {
			case contained:
				g.memo[cur] = true
				stack = stack[:len(stack)-1]
			case len(pending) == 0:
				g.memo[cur] = false
				stack = stack[:len(stack)-1]
			default:
				// Revisit cur once its parents are resolved.
				stack = append(stack, pending...)
			}
		}
	}

	return g.memo[probe], nil
}
