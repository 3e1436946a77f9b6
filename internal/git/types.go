// Package git provides the git abstraction layer for merge checking.
// It defines concrete entity types (Commit, Branch), a Repository interface
// with go-git and GitHub API backends, and higher-level domain queries via
// RepositoryStore.
package git

import (
	"strings"
	"time"
)

const (
	localBranchPrefix          = "refs/heads/"
	remoteTrackingBranchPrefix = "refs/remotes/"
)

// Commit represents a git commit. Immutable once constructed.
type Commit struct {
	Sha     string
	Parents []string // parent SHAs, ordered; the first parent is the mainline continuation
	Author  string
	When    time.Time
	Message string
}

// IsMerge returns true if the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot returns true if the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// Title returns the first line of the commit message.
func (c Commit) Title() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx >= 0 {
		return strings.TrimRight(c.Message[:idx], "\r")
	}
	return c.Message
}

// ShortSha returns the first 7 characters of the SHA.
func (c Commit) ShortSha() string {
	if len(c.Sha) >= 7 {
		return c.Sha[:7]
	}
	return c.Sha
}

// IsEmpty returns true if the commit has no SHA (zero value).
func (c Commit) IsEmpty() bool {
	return c.Sha == ""
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical     string // e.g., "refs/remotes/origin/feature/login"
	Friendly      string // e.g., "origin/feature/login"
	WithoutRemote string // e.g., "feature/login"
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical
	withoutRemote := canonical

	switch {
	case strings.HasPrefix(canonical, localBranchPrefix):
		friendly = canonical[len(localBranchPrefix):]
		withoutRemote = friendly
	case strings.HasPrefix(canonical, remoteTrackingBranchPrefix):
		friendly = canonical[len(remoteTrackingBranchPrefix):]
		if idx := strings.Index(friendly, "/"); idx >= 0 {
			withoutRemote = friendly[idx+1:]
		} else {
			withoutRemote = friendly
		}
	}

	return ReferenceName{
		Canonical:     canonical,
		Friendly:      friendly,
		WithoutRemote: withoutRemote,
	}
}

// NewBranchReferenceName creates a ReferenceName for a local branch.
func NewBranchReferenceName(name string) ReferenceName {
	return NewReferenceName(localBranchPrefix + name)
}

// NewRemoteReferenceName creates a ReferenceName for a remote tracking branch.
func NewRemoteReferenceName(remote, name string) ReferenceName {
	return NewReferenceName(remoteTrackingBranchPrefix + remote + "/" + name)
}

// IsBranch returns true if this reference is a local branch.
func (r ReferenceName) IsBranch() bool {
	return strings.HasPrefix(r.Canonical, localBranchPrefix)
}

// IsRemoteBranch returns true if this reference is a remote tracking branch.
func (r ReferenceName) IsRemoteBranch() bool {
	return strings.HasPrefix(r.Canonical, remoteTrackingBranchPrefix)
}

// Branch represents a git branch and its tip commit.
type Branch struct {
	Name     ReferenceName
	Tip      *Commit
	IsRemote bool
}

// FriendlyName returns the friendly name of the branch.
func (b Branch) FriendlyName() string {
	return b.Name.Friendly
}
