package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens a git repository at the given path.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.commitFromHash(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}

	return Branch{
		Name:     NewReferenceName(string(ref.Name())),
		Tip:      &commit,
		IsRemote: false,
	}, nil
}

func (r *GoGitRepository) ResolveRef(expr string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(expr))
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", expr, ErrInvalidRef)
	}

	// The revision may name a non-commit object (e.g. a tree); only
	// commits are valid targets.
	if _, err := r.repo.CommitObject(*hash); err != nil {
		return "", fmt.Errorf("resolving %q: %w", expr, ErrInvalidRef)
	}

	return hash.String(), nil
}

func (r *GoGitRepository) FirstCommit() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return "", fmt.Errorf("getting commit log: %w", err)
	}

	var root *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() != 0 {
			return nil
		}
		// Keep the oldest root in case history was grafted together
		// from multiple starting points.
		if root == nil || c.Committer.When.Before(root.Committer.When) {
			root = c
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating commits: %w", err)
	}

	if root == nil {
		return "", fmt.Errorf("repository has no root commit")
	}

	return root.Hash.String(), nil
}

func (r *GoGitRepository) LogAncestryPath(root, tip string) ([]Commit, error) {
	tipHash := plumbing.NewHash(tip)
	if _, err := r.repo.CommitObject(tipHash); err != nil {
		return nil, fmt.Errorf("loading tip %s: %w", tip, err)
	}

	// Collect every ancestor of tip. Under the single-root assumption all
	// of them lie between the first commit and tip, so no further
	// restriction is needed; the walk simply does not continue past root.
	collected := make(map[string]bool)
	var commits []Commit
	stack := []plumbing.Hash{tipHash}
	for len(stack) > 0 {
		hash := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if collected[hash.String()] {
			continue
		}

		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("loading commit %s: %w", hash.String(), err)
		}
		collected[hash.String()] = true
		commits = append(commits, convertCommit(c))

		if hash.String() == root {
			continue
		}
		for _, p := range c.ParentHashes {
			if !collected[p.String()] {
				stack = append(stack, p)
			}
		}
	}

	ordered, err := SortAncestryPath(tip, commits)
	if err != nil {
		return nil, fmt.Errorf("ordering ancestry path: %w", err)
	}

	return ordered, nil
}

func (r *GoGitRepository) RemoteBranches() ([]Branch, error) {
	refIter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	var branches []Branch
	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}
		// Symbolic aliases such as origin/HEAD are not branches.
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		commit, err := r.commitFromHash(ref.Hash())
		if err != nil {
			return nil // skip branches we can't resolve
		}
		branches = append(branches, Branch{
			Name:     NewReferenceName(string(ref.Name())),
			Tip:      &commit,
			IsRemote: true,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating remote branches: %w", err)
	}

	return branches, nil
}

func (r *GoGitRepository) CommitFromSha(sha string) (Commit, error) {
	return r.commitFromHash(plumbing.NewHash(sha))
}

// commitFromHash loads a go-git commit and converts it to our Commit type.
func (r *GoGitRepository) commitFromHash(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return convertCommit(c), nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		Author:  c.Author.Name,
		When:    c.Committer.When,
		Message: c.Message,
	}
}
