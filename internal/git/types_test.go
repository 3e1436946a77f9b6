package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommit_IsMerge(t *testing.T) {
	tests := []struct {
		name    string
		parents []string
		expect  bool
	}{
		{"no parents (root)", nil, false},
		{"one parent", []string{"abc"}, false},
		{"two parents (merge)", []string{"abc", "def"}, true},
		{"three parents (octopus)", []string{"a", "b", "c"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Parents: tt.parents}
			require.Equal(t, tt.expect, c.IsMerge())
		})
	}
}

func TestCommit_IsRoot(t *testing.T) {
	require.True(t, Commit{}.IsRoot())
	require.False(t, Commit{Parents: []string{"abc"}}.IsRoot())
}

func TestCommit_Title(t *testing.T) {
	tests := []struct {
		name    string
		message string
		expect  string
	}{
		{"single line", "Fix login bug", "Fix login bug"},
		{"multi line", "Fix login bug\n\nLonger description", "Fix login bug"},
		{"trailing newline", "Fix login bug\n", "Fix login bug"},
		{"windows line ending", "Fix login bug\r\nmore", "Fix login bug"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Message: tt.message}
			require.Equal(t, tt.expect, c.Title())
		})
	}
}

func TestCommit_ShortSha(t *testing.T) {
	tests := []struct {
		name   string
		sha    string
		expect string
	}{
		{"normal", "abc1234567890def", "abc1234"},
		{"short sha", "abc", "abc"},
		{"exactly 7", "abc1234", "abc1234"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Sha: tt.sha}
			require.Equal(t, tt.expect, c.ShortSha())
		})
	}
}

func TestCommit_IsEmpty(t *testing.T) {
	require.True(t, Commit{}.IsEmpty())
	require.False(t, Commit{Sha: "abc"}.IsEmpty())
}

func TestNewReferenceName_LocalBranch(t *testing.T) {
	ref := NewReferenceName("refs/heads/main")
	require.Equal(t, "refs/heads/main", ref.Canonical)
	require.Equal(t, "main", ref.Friendly)
	require.Equal(t, "main", ref.WithoutRemote)
	require.True(t, ref.IsBranch())
	require.False(t, ref.IsRemoteBranch())
}

func TestNewReferenceName_RemoteBranch(t *testing.T) {
	ref := NewReferenceName("refs/remotes/origin/feature/login")
	require.Equal(t, "origin/feature/login", ref.Friendly)
	require.Equal(t, "feature/login", ref.WithoutRemote)
	require.False(t, ref.IsBranch())
	require.True(t, ref.IsRemoteBranch())
}

func TestNewReferenceName_Unprefixed(t *testing.T) {
	ref := NewReferenceName("HEAD")
	require.Equal(t, "HEAD", ref.Canonical)
	require.Equal(t, "HEAD", ref.Friendly)
	require.Equal(t, "HEAD", ref.WithoutRemote)
}

func TestNewBranchReferenceName(t *testing.T) {
	ref := NewBranchReferenceName("develop")
	require.Equal(t, "refs/heads/develop", ref.Canonical)
	require.Equal(t, "develop", ref.Friendly)
}

func TestNewRemoteReferenceName(t *testing.T) {
	ref := NewRemoteReferenceName("origin", "feature/x")
	require.Equal(t, "refs/remotes/origin/feature/x", ref.Canonical)
	require.Equal(t, "origin/feature/x", ref.Friendly)
	require.Equal(t, "feature/x", ref.WithoutRemote)
}

func TestBranch_FriendlyName(t *testing.T) {
	b := Branch{Name: NewReferenceName("refs/remotes/origin/main"), IsRemote: true}
	require.Equal(t, "origin/main", b.FriendlyName())
}
