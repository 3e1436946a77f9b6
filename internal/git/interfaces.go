package git

import "errors"

// ErrInvalidRef indicates a branch or commit expression that does not
// resolve to a commit. It is fatal for the run: there is no meaningful
// partial result without a valid target.
var ErrInvalidRef = errors.New("reference does not resolve to a commit")

// Repository provides low-level git operations.
// This is the key abstraction point for testing and backend swapping:
// implementations exist for local repositories (go-git) and for the
// GitHub API.
type Repository interface {
	// Path returns a human-readable location of the repository.
	Path() string

	// WorkingDirectory returns the path to the working directory, or an
	// empty string for backends without one.
	WorkingDirectory() string

	// Head returns the current HEAD branch.
	Head() (Branch, error)

	// ResolveRef resolves a ref expression (branch name, ref path, or
	// SHA) to a full commit SHA. Returns ErrInvalidRef if the expression
	// does not name a valid commit.
	ResolveRef(expr string) (string, error)

	// FirstCommit returns the SHA of the oldest commit in repository
	// history, used as the lower bound of every ancestry-path query.
	FirstCommit() (string, error)

	// LogAncestryPath returns the commits lying on the ancestry path
	// between root and tip, newest first and topologically ordered:
	// every commit appears before any of its parents. The sequence
	// includes tip; root handling is backend-defined but consistent.
	LogAncestryPath(root, tip string) ([]Commit, error)

	// RemoteBranches returns all remote tracking branches with their tip
	// commits, excluding symbolic aliases such as origin/HEAD.
	RemoteBranches() ([]Branch, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)
}
