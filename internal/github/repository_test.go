package github

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"

	"github.com/yujunjiex/git-merge-checker/internal/git"
)

var (
	shaA = strings.Repeat("a", 40)
	shaC = strings.Repeat("c", 40)
	shaF = strings.Repeat("f", 40)
	shaM = strings.Repeat("1", 40)
)

// apiCommit renders a RepositoryCommit JSON document.
func apiCommit(sha, message, date string, parents ...string) string {
	parts := make([]string, 0, len(parents))
	for _, p := range parents {
		parts = append(parts, fmt.Sprintf(`{"sha":%q}`, p))
	}
	return fmt.Sprintf(`{"sha":%q,"parents":[%s],"commit":{"message":%q,"author":{"name":"dev"},"committer":{"date":%q}}}`,
		sha, strings.Join(parts, ","), message, date)
}

// fixtureServer serves a four-commit history with one merged feature
// branch over the REST and GraphQL endpoints the repository uses.
func fixtureServer(t *testing.T, requests *int) *GitHubRepository {
	t.Helper()

	commitM := apiCommit(shaM, "Merge branch 'feature'", "2025-03-01T09:03:00Z", shaC, shaF)
	commitC := apiCommit(shaC, "mainline work", "2025-03-01T09:02:00Z", shaA)
	commitF := apiCommit(shaF, "feature work", "2025-03-01T09:01:00Z", shaA)
	commitA := apiCommit(shaA, "initial", "2025-03-01T09:00:00Z")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/widgets", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"default_branch":"main"}`)
	})
	mux.HandleFunc("/api/v3/repos/acme/widgets/branches/main", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"name":"main","commit":%s}`, commitM)
	})
	mux.HandleFunc("/api/v3/repos/acme/widgets/commits", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "[%s,%s,%s,%s]", commitM, commitC, commitF, commitA)
	})
	mux.HandleFunc("/api/v3/repos/acme/widgets/commits/", func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimPrefix(r.URL.Path, "/api/v3/repos/acme/widgets/commits/")
		switch ref {
		case "main", shaM:
			fmt.Fprint(w, commitM)
		case shaC:
			fmt.Fprint(w, commitC)
		case shaF:
			fmt.Fprint(w, commitF)
		case shaA:
			fmt.Fprint(w, commitA)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}
	})
	mux.HandleFunc("/api/graphql", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":{"repository":{"refs":{"nodes":[
			{"name":"main","target":{"oid":%q,"message":"Merge branch 'feature'","committedDate":"2025-03-01T09:03:00Z","author":{"name":"dev"},"parents":{"nodes":[{"oid":%q},{"oid":%q}]}}},
			{"name":"feature","target":{"oid":%q,"message":"feature work","committedDate":"2025-03-01T09:01:00Z","author":{"name":"dev"},"parents":{"nodes":[{"oid":%q}]}}}
		],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}}`, shaM, shaC, shaF, shaF, shaA)
	})

	counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			*requests++
		}
		w.Header().Set("Content-Type", "application/json")
		mux.ServeHTTP(w, r)
	})

	srv := httptest.NewServer(counted)
	t.Cleanup(srv.Close)

	client, err := gh.NewClient(nil).WithEnterpriseURLs(srv.URL+"/api/v3/", srv.URL+"/api/uploads/")
	require.NoError(t, err)

	return NewGitHubRepository(client, "acme", "widgets", WithBaseURL(srv.URL+"/api/v3"))
}

func TestGitHubRepository_Path(t *testing.T) {
	repo := fixtureServer(t, nil)
	require.Equal(t, "github.com/acme/widgets", repo.Path())
	require.Equal(t, "", repo.WorkingDirectory())
}

func TestGitHubRepository_Head(t *testing.T) {
	var requests int
	repo := fixtureServer(t, &requests)

	head, err := repo.Head()
	require.NoError(t, err)
	require.Equal(t, "main", head.FriendlyName())
	require.False(t, head.IsRemote)
	require.Equal(t, shaM, head.Tip.Sha)
	require.Equal(t, []string{shaC, shaF}, head.Tip.Parents)

	// Second call is served from cache.
	before := requests
	_, err = repo.Head()
	require.NoError(t, err)
	require.Equal(t, before, requests)
}

func TestGitHubRepository_ResolveRef(t *testing.T) {
	repo := fixtureServer(t, nil)

	sha, err := repo.ResolveRef("main")
	require.NoError(t, err)
	require.Equal(t, shaM, sha)

	sha, err = repo.ResolveRef(shaC)
	require.NoError(t, err)
	require.Equal(t, shaC, sha)

	_, err = repo.ResolveRef("no-such-branch")
	require.ErrorIs(t, err, git.ErrInvalidRef)

	_, err = repo.ResolveRef(strings.Repeat("9", 40))
	require.ErrorIs(t, err, git.ErrInvalidRef)
}

func TestGitHubRepository_FirstCommit(t *testing.T) {
	repo := fixtureServer(t, nil)

	root, err := repo.FirstCommit()
	require.NoError(t, err)
	require.Equal(t, shaA, root)
}

func TestGitHubRepository_FirstCommit_CappedWalk(t *testing.T) {
	var requests int
	repo := fixtureServer(t, &requests)
	WithMaxCommits(2)(repo)

	// With the walk capped before the root, the oldest fetched commit
	// bounds the ancestry path.
	root, err := repo.FirstCommit()
	require.NoError(t, err)
	require.Equal(t, shaC, root)
}

func TestGitHubRepository_LogAncestryPath(t *testing.T) {
	repo := fixtureServer(t, nil)

	commits, err := repo.LogAncestryPath(shaA, shaM)
	require.NoError(t, err)
	require.Len(t, commits, 4)
	require.Equal(t, shaM, commits[0].Sha)

	pos := make(map[string]int, len(commits))
	for i, c := range commits {
		pos[c.Sha] = i
	}
	require.Less(t, pos[shaM], pos[shaC])
	require.Less(t, pos[shaM], pos[shaF])
	require.Less(t, pos[shaC], pos[shaA])
	require.Less(t, pos[shaF], pos[shaA])
}

func TestGitHubRepository_RemoteBranches(t *testing.T) {
	var requests int
	repo := fixtureServer(t, &requests)

	branches, err := repo.RemoteBranches()
	require.NoError(t, err)
	require.Len(t, branches, 2)

	byName := make(map[string]git.Branch)
	for _, b := range branches {
		require.True(t, b.IsRemote)
		byName[b.FriendlyName()] = b
	}
	require.Equal(t, shaM, byName["origin/main"].Tip.Sha)
	require.Equal(t, shaF, byName["origin/feature"].Tip.Sha)

	before := requests
	_, err = repo.RemoteBranches()
	require.NoError(t, err)
	require.Equal(t, before, requests)
}

func TestGitHubRepository_CommitFromSha(t *testing.T) {
	repo := fixtureServer(t, nil)

	commit, err := repo.CommitFromSha(shaF)
	require.NoError(t, err)
	require.Equal(t, shaF, commit.Sha)
	require.Equal(t, "dev", commit.Author)
	require.Equal(t, "feature work", commit.Message)
	require.Equal(t, []string{shaA}, commit.Parents)
}

func TestConvertAPICommit(t *testing.T) {
	rc := &gh.RepositoryCommit{
		SHA: gh.Ptr(shaM),
		Parents: []*gh.Commit{
			{SHA: gh.Ptr(shaC)},
			{SHA: gh.Ptr(shaF)},
		},
		Commit: &gh.Commit{
			Message:   gh.Ptr("Merge branch 'feature'"),
			Author:    &gh.CommitAuthor{Name: gh.Ptr("dev")},
			Committer: &gh.CommitAuthor{Date: &gh.Timestamp{}},
		},
	}

	commit := convertAPICommit(rc)
	require.Equal(t, shaM, commit.Sha)
	require.Equal(t, []string{shaC, shaF}, commit.Parents)
	require.Equal(t, "dev", commit.Author)
	require.True(t, commit.IsMerge())
}
