package git

import (
	"fmt"
	"sort"
)

// RepositoryStore provides higher-level domain queries built on top of a
// Repository: target resolution with a HEAD fallback, the bounded ancestry
// path used to build merge graphs, and filtered remote branch listings.
type RepositoryStore struct {
	repo Repository
}

// NewRepositoryStore creates a new RepositoryStore wrapping the given Repository.
func NewRepositoryStore(repo Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// ResolveTarget resolves a target branch expression to its tip SHA and a
// display name. An empty expression means the current HEAD branch.
// Returns a wrapped ErrInvalidRef if the expression does not name a commit.
func (s *RepositoryStore) ResolveTarget(expr string) (sha, name string, err error) {
	if expr == "" {
		head, err := s.repo.Head()
		if err != nil {
			return "", "", fmt.Errorf("resolving HEAD: %w", err)
		}
		if head.Tip == nil {
			return "", "", fmt.Errorf("resolving HEAD: %w", ErrInvalidRef)
		}
		return head.Tip.Sha, head.FriendlyName(), nil
	}

	resolved, err := s.repo.ResolveRef(expr)
	if err != nil {
		return "", "", err
	}
	return resolved, expr, nil
}

// AncestryPath returns the newest-first, topologically ordered commit
// sequence between the repository's first commit and tip.
func (s *RepositoryStore) AncestryPath(tip string) ([]Commit, error) {
	root, err := s.repo.FirstCommit()
	if err != nil {
		return nil, fmt.Errorf("finding first commit: %w", err)
	}

	commits, err := s.repo.LogAncestryPath(root, tip)
	if err != nil {
		return nil, fmt.Errorf("reading ancestry path: %w", err)
	}

	return commits, nil
}

// RemoteBranchTips returns the remote tracking branches whose friendly name
// satisfies match, sorted by friendly name. A nil match keeps every branch.
func (s *RepositoryStore) RemoteBranchTips(match func(string) bool) ([]Branch, error) {
	branches, err := s.repo.RemoteBranches()
	if err != nil {
		return nil, fmt.Errorf("listing remote branches: %w", err)
	}

	var result []Branch
	for _, b := range branches {
		if b.Tip == nil {
			continue
		}
		if match != nil && !match(b.FriendlyName()) {
			continue
		}
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FriendlyName() < result[j].FriendlyName()
	})

	return result, nil
}
