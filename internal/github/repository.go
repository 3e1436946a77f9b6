package github

import (
	"context"
	"fmt"
	"regexp"

	gh "github.com/google/go-github/v68/github"

	"github.com/yujunjiex/git-merge-checker/internal/git"
)

// Compile-time check that GitHubRepository implements git.Repository.
var _ git.Repository = (*GitHubRepository)(nil)

const defaultMaxCommits = 1000

// GitHubRepository implements git.Repository using the GitHub API. The
// commit walk is capped at maxCommits; for histories deeper than the cap
// the ancestry path is truncated at the oldest fetched commit, which the
// graph layer tolerates by treating out-of-window parents as absent.
type GitHubRepository struct {
	client     *gh.Client
	owner      string
	repo       string
	baseURL    string // custom API base URL for GHE
	maxCommits int    // hard cap on commit walk depth
	cache      *apiCache
	ctx        context.Context // request context
}

// Option configures a GitHubRepository.
type Option func(*GitHubRepository)

// WithMaxCommits sets the hard cap on commit walk depth.
func WithMaxCommits(n int) Option {
	return func(r *GitHubRepository) {
		if n > 0 {
			r.maxCommits = n
		}
	}
}

// WithBaseURL sets the GitHub API base URL for GitHub Enterprise.
func WithBaseURL(url string) Option {
	return func(r *GitHubRepository) { r.baseURL = url }
}

// NewGitHubRepository creates a new GitHubRepository.
func NewGitHubRepository(client *gh.Client, owner, repo string, opts ...Option) *GitHubRepository {
	r := &GitHubRepository{
		client:     client,
		owner:      owner,
		repo:       repo,
		maxCommits: defaultMaxCommits,
		cache:      newCache(),
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *GitHubRepository) Path() string {
	return fmt.Sprintf("github.com/%s/%s", r.owner, r.repo)
}

func (r *GitHubRepository) WorkingDirectory() string {
	return ""
}

var hexPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func (r *GitHubRepository) Head() (git.Branch, error) {
	if branch, ok := r.cache.getHead(); ok {
		return *branch, nil
	}

	repoInfo, _, err := r.client.Repositories.Get(r.ctx, r.owner, r.repo)
	if err != nil {
		return git.Branch{}, fmt.Errorf("getting repository info: %w", err)
	}
	ref := repoInfo.GetDefaultBranch()

	ghBranch, _, err := r.client.Repositories.GetBranch(r.ctx, r.owner, r.repo, ref, 0)
	if err != nil {
		return git.Branch{}, fmt.Errorf("getting branch %s: %w", ref, err)
	}

	tip := convertAPICommit(ghBranch.GetCommit())
	r.cache.putCommit(tip)

	branch := git.Branch{
		Name:     git.NewBranchReferenceName(ref),
		Tip:      &tip,
		IsRemote: false,
	}
	r.cache.putHead(branch)
	return branch, nil
}

func (r *GitHubRepository) ResolveRef(expr string) (string, error) {
	if hexPattern.MatchString(expr) {
		if commit, err := r.CommitFromSha(expr); err == nil {
			return commit.Sha, nil
		}
		return "", fmt.Errorf("resolving %q: %w", expr, git.ErrInvalidRef)
	}

	rc, _, err := r.client.Repositories.GetCommit(r.ctx, r.owner, r.repo, expr, nil)
	if err != nil {
		if isNotFoundError(err) {
			return "", fmt.Errorf("resolving %q: %w", expr, git.ErrInvalidRef)
		}
		return "", fmt.Errorf("resolving %q: %w", expr, err)
	}

	commit := convertAPICommit(rc)
	r.cache.putCommit(commit)
	return commit.Sha, nil
}

func (r *GitHubRepository) FirstCommit() (string, error) {
	if sha, ok := r.cache.getFirstCommit(); ok {
		return sha, nil
	}

	head, err := r.Head()
	if err != nil {
		return "", err
	}

	log, err := r.fetchLog(head.Tip.Sha)
	if err != nil {
		return "", err
	}

	// The walk is capped, so a true root may be outside the window; the
	// oldest fetched commit then bounds the ancestry path instead.
	first := log[len(log)-1].Sha
	for _, c := range log {
		if c.IsRoot() {
			first = c.Sha
			break
		}
	}

	r.cache.putFirstCommit(first)
	return first, nil
}

func (r *GitHubRepository) LogAncestryPath(root, tip string) ([]git.Commit, error) {
	log, err := r.fetchLog(tip)
	if err != nil {
		return nil, err
	}

	ordered, err := git.SortAncestryPath(tip, log)
	if err != nil {
		return nil, fmt.Errorf("ordering ancestry path: %w", err)
	}
	return ordered, nil
}

// fetchLog pages through the commit list starting at tip, up to maxCommits.
func (r *GitHubRepository) fetchLog(tip string) ([]git.Commit, error) {
	if log, ok := r.cache.getLog(tip); ok {
		return log, nil
	}

	opts := &gh.CommitsListOptions{
		SHA:         tip,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var commits []git.Commit
	for {
		page, resp, err := r.client.Repositories.ListCommits(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits from %s: %w", tip, err)
		}

		for _, rc := range page {
			commit := convertAPICommit(rc)
			commits = append(commits, commit)
			r.cache.putCommit(commit)
			if len(commits) >= r.maxCommits {
				break
			}
		}

		if len(commits) >= r.maxCommits || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(commits) == 0 {
		return nil, fmt.Errorf("commit %s has no history", tip)
	}

	r.cache.putLog(tip, commits)
	return commits, nil
}

func (r *GitHubRepository) RemoteBranches() ([]git.Branch, error) {
	if branches, ok := r.cache.getBranches(); ok {
		return branches, nil
	}

	branches, err := r.fetchAllBranchesGraphQL()
	if err != nil {
		return nil, err
	}

	r.cache.putBranches(branches)
	return branches, nil
}

func (r *GitHubRepository) CommitFromSha(sha string) (git.Commit, error) {
	if commit, ok := r.cache.getCommit(sha); ok {
		return commit, nil
	}

	rc, _, err := r.client.Repositories.GetCommit(r.ctx, r.owner, r.repo, sha, nil)
	if err != nil {
		return git.Commit{}, fmt.Errorf("loading commit %s: %w", sha, err)
	}

	commit := convertAPICommit(rc)
	r.cache.putCommit(commit)
	return commit, nil
}

// convertAPICommit converts a GitHub API commit to our Commit type.
func convertAPICommit(rc *gh.RepositoryCommit) git.Commit {
	parents := make([]string, 0, len(rc.Parents))
	for _, p := range rc.Parents {
		parents = append(parents, p.GetSHA())
	}

	inner := rc.GetCommit()
	return git.Commit{
		Sha:     rc.GetSHA(),
		Parents: parents,
		Author:  inner.GetAuthor().GetName(),
		When:    inner.GetCommitter().GetDate().Time,
		Message: inner.GetMessage(),
	}
}
