package github

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveGraphQLURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://ghe.example.com/api/v3", "https://ghe.example.com/api/graphql"},
		{"https://ghe.example.com/api/v3/", "https://ghe.example.com/api/graphql"},
		{"https://api.github.com", "https://api.github.com/graphql"},
		{"https://api.github.com/", "https://api.github.com/graphql"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, deriveGraphQLURL(tt.base), tt.base)
	}
}

func TestCommitFromRefTarget(t *testing.T) {
	target := refTarget{
		OID:           "abc123",
		Message:       "Merge branch 'feature'",
		CommittedDate: "2025-03-01T09:03:00Z",
		Author:        authorNode{Name: "dev"},
	}
	target.Parents.Nodes = []struct {
		OID string `json:"oid"`
	}{{OID: "p1"}, {OID: "p2"}}

	commit := commitFromRefTarget(target)
	require.Equal(t, "abc123", commit.Sha)
	require.Equal(t, []string{"p1", "p2"}, commit.Parents)
	require.Equal(t, "dev", commit.Author)
	require.Equal(t, 2025, commit.When.Year())
	require.True(t, commit.IsMerge())
}

func TestCommitFromRefTarget_BadDate(t *testing.T) {
	commit := commitFromRefTarget(refTarget{OID: "abc", CommittedDate: "not-a-date"})
	require.True(t, commit.When.IsZero())
}
