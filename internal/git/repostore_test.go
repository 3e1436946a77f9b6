package git_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yujunjiex/git-merge-checker/internal/git"
)

func TestRepositoryStore_ResolveTarget_HeadFallback(t *testing.T) {
	repo := &git.MockRepository{
		HeadFunc: func() (git.Branch, error) {
			return git.Branch{
				Name: git.NewBranchReferenceName("main"),
				Tip:  &git.Commit{Sha: "abc123"},
			}, nil
		},
	}
	store := git.NewRepositoryStore(repo)

	sha, name, err := store.ResolveTarget("")
	require.NoError(t, err)
	require.Equal(t, "abc123", sha)
	require.Equal(t, "main", name)
}

func TestRepositoryStore_ResolveTarget_HeadWithoutTip(t *testing.T) {
	repo := &git.MockRepository{
		HeadFunc: func() (git.Branch, error) {
			return git.Branch{Name: git.NewBranchReferenceName("main")}, nil
		},
	}
	store := git.NewRepositoryStore(repo)

	_, _, err := store.ResolveTarget("")
	require.ErrorIs(t, err, git.ErrInvalidRef)
}

func TestRepositoryStore_ResolveTarget_Explicit(t *testing.T) {
	repo := &git.MockRepository{
		ResolveRefFunc: func(expr string) (string, error) {
			require.Equal(t, "release/v2", expr)
			return "def456", nil
		},
	}
	store := git.NewRepositoryStore(repo)

	sha, name, err := store.ResolveTarget("release/v2")
	require.NoError(t, err)
	require.Equal(t, "def456", sha)
	require.Equal(t, "release/v2", name)
}

func TestRepositoryStore_ResolveTarget_Invalid(t *testing.T) {
	repo := &git.MockRepository{
		ResolveRefFunc: func(string) (string, error) {
			return "", git.ErrInvalidRef
		},
	}
	store := git.NewRepositoryStore(repo)

	_, _, err := store.ResolveTarget("garbage")
	require.ErrorIs(t, err, git.ErrInvalidRef)
}

func TestRepositoryStore_AncestryPath(t *testing.T) {
	repo := &git.MockRepository{
		FirstCommitFunc: func() (string, error) {
			return "root", nil
		},
		LogAncestryPathFunc: func(root, tip string) ([]git.Commit, error) {
			require.Equal(t, "root", root)
			require.Equal(t, "tip", tip)
			return []git.Commit{{Sha: "tip", Parents: []string{"root"}}, {Sha: "root"}}, nil
		},
	}
	store := git.NewRepositoryStore(repo)

	commits, err := store.AncestryPath("tip")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "tip", commits[0].Sha)
}

func TestRepositoryStore_AncestryPath_FirstCommitError(t *testing.T) {
	sentinel := errors.New("boom")
	repo := &git.MockRepository{
		FirstCommitFunc: func() (string, error) {
			return "", sentinel
		},
	}
	store := git.NewRepositoryStore(repo)

	_, err := store.AncestryPath("tip")
	require.ErrorIs(t, err, sentinel)
}

func TestRepositoryStore_RemoteBranchTips(t *testing.T) {
	repo := &git.MockRepository{
		RemoteBranchesFunc: func() ([]git.Branch, error) {
			return []git.Branch{
				{Name: git.NewRemoteReferenceName("origin", "zeta"), Tip: &git.Commit{Sha: "z"}, IsRemote: true},
				{Name: git.NewRemoteReferenceName("origin", "alpha"), Tip: &git.Commit{Sha: "a"}, IsRemote: true},
				{Name: git.NewRemoteReferenceName("origin", "broken"), IsRemote: true},
			}, nil
		},
	}
	store := git.NewRepositoryStore(repo)

	branches, err := store.RemoteBranchTips(nil)
	require.NoError(t, err)
	require.Len(t, branches, 2, "branches without a tip are skipped")
	require.Equal(t, "origin/alpha", branches[0].FriendlyName())
	require.Equal(t, "origin/zeta", branches[1].FriendlyName())
}

func TestRepositoryStore_RemoteBranchTips_Filtered(t *testing.T) {
	repo := &git.MockRepository{
		RemoteBranchesFunc: func() ([]git.Branch, error) {
			return []git.Branch{
				{Name: git.NewRemoteReferenceName("origin", "feature/a"), Tip: &git.Commit{Sha: "a"}, IsRemote: true},
				{Name: git.NewRemoteReferenceName("origin", "hotfix/b"), Tip: &git.Commit{Sha: "b"}, IsRemote: true},
			}, nil
		},
	}
	store := git.NewRepositoryStore(repo)

	branches, err := store.RemoteBranchTips(func(name string) bool {
		return strings.HasPrefix(name, "origin/feature/")
	})
	require.NoError(t, err)
	require.Len(t, branches, 1)
	require.Equal(t, "origin/feature/a", branches[0].FriendlyName())
}
