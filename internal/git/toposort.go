package git

import (
	"container/heap"
	"fmt"
)

// SortAncestryPath orders the given commits newest-first and topologically:
// every commit appears before any of its parents. Commits not reachable
// from tip by following parent edges are dropped, so the result is exactly
// the ancestry path ending at tip. Ties between commits with no pending
// children are broken by committer time, newest first, so the order matches
// what a human reads in a log.
//
// Committer timestamps alone are not a safe ordering (clock skew across
// machines can place a child before its parent), which is why the child
// counts drive the order and time only breaks ties.
func SortAncestryPath(tip string, commits []Commit) ([]Commit, error) {
	bySha := make(map[string]Commit, len(commits))
	for _, c := range commits {
		bySha[c.Sha] = c
	}
	if _, ok := bySha[tip]; !ok {
		return nil, fmt.Errorf("tip %s not present in commit log", tip)
	}

	// Restrict to ancestors of tip.
	reachable := make(map[string]bool, len(bySha))
	queue := []string{tip}
	reachable[tip] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range bySha[cur].Parents {
			if reachable[p] {
				continue
			}
			if _, ok := bySha[p]; !ok {
				continue
			}
			reachable[p] = true
			queue = append(queue, p)
		}
	}

	// Count children within the reachable set.
	pendingChildren := make(map[string]int, len(reachable))
	for sha := range reachable {
		for _, p := range bySha[sha].Parents {
			if reachable[p] {
				pendingChildren[p]++
			}
		}
	}

	h := &commitHeap{}
	heap.Push(h, bySha[tip])

	ordered := make([]Commit, 0, len(reachable))
	for h.Len() > 0 {
		c := heap.Pop(h).(Commit)
		ordered = append(ordered, c)
		for _, p := range c.Parents {
			if !reachable[p] {
				continue
			}
			pendingChildren[p]--
			if pendingChildren[p] == 0 {
				heap.Push(h, bySha[p])
			}
		}
	}

	if len(ordered) != len(reachable) {
		return nil, fmt.Errorf("commit graph for tip %s contains a cycle or dangling parent", tip)
	}

	return ordered, nil
}

// commitHeap orders commits by committer time, newest first, with the SHA
// as a deterministic tie-break.
type commitHeap []Commit

func (h commitHeap) Len() int { return len(h) }

func (h commitHeap) Less(i, j int) bool {
	if !h[i].When.Equal(h[j].When) {
		return h[i].When.After(h[j].When)
	}
	return h[i].Sha < h[j].Sha
}

func (h commitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *commitHeap) Push(x any) { *h = append(*h, x.(Commit)) }

func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
