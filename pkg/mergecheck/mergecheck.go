// Package mergecheck provides a public Go API for checking which remote
// branches have been merged into a target branch. It supports both local
// repositories (via go-git) and remote GitHub repositories (via the
// GitHub API).
//
// Basic usage:
//
//	report, err := mergecheck.Check(mergecheck.LocalOptions{
//	    Path:   "/path/to/repo",
//	    Target: "main",
//	})
//	for _, r := range report.Results {
//	    fmt.Println(r.Branch.FriendlyName(), r.State)
//	}
//
//	report, err := mergecheck.CheckRemote(mergecheck.RemoteOptions{
//	    Owner: "myorg",
//	    Repo:  "myrepo",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
package mergecheck

import (
	"errors"
	"fmt"

	"github.com/yujunjiex/git-merge-checker/internal/checker"
	"github.com/yujunjiex/git-merge-checker/internal/git"
	ghprovider "github.com/yujunjiex/git-merge-checker/internal/github"
)

// LocalOptions configures a merge check against a local git repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Target is the target branch expression. Empty means the current
	// HEAD branch.
	Target string

	// Patterns restricts the checked branches by glob match on their
	// friendly name. Empty means all remote branches.
	Patterns []string
}

// RemoteOptions configures a merge check via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Target is the target branch. Empty means the repository's default
	// branch.
	Target string

	// Patterns restricts the checked branches by glob match.
	Patterns []string

	// MaxCommits is the hard cap on commit walk depth. Defaults to 1000.
	MaxCommits int
}

// Report is the outcome of a merge check; see checker.Report.
type Report = checker.Report

// Check runs a merge check against a local git repository.
func Check(opts LocalOptions) (*Report, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	return run(repo, opts.Target, opts.Patterns)
}

// CheckRemote runs a merge check against a GitHub repository via API.
func CheckRemote(opts RemoteOptions) (*Report, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	var ghOpts []ghprovider.Option
	if opts.MaxCommits > 0 {
		ghOpts = append(ghOpts, ghprovider.WithMaxCommits(opts.MaxCommits))
	}
	if opts.BaseURL != "" {
		ghOpts = append(ghOpts, ghprovider.WithBaseURL(opts.BaseURL))
	}
	ghRepo := ghprovider.NewGitHubRepository(client, opts.Owner, opts.Repo, ghOpts...)

	return run(ghRepo, opts.Target, opts.Patterns)
}

// run executes the shared check pipeline.
func run(repo git.Repository, target string, patterns []string) (*Report, error) {
	store := git.NewRepositoryStore(repo)
	return checker.New(store).Run(checker.Options{
		Target:   target,
		Patterns: patterns,
	})
}
