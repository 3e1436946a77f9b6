package github

import (
	"sync"

	"github.com/yujunjiex/git-merge-checker/internal/git"
)

// apiCache provides in-memory caching for GitHub API responses.
// All fields are protected by a read-write mutex for concurrent safety.
// Caches have a single-run lifetime (not persisted).
type apiCache struct {
	mu sync.RWMutex

	// Ref-level caches (fetched all at once).
	branches        []git.Branch
	branchesFetched bool

	// SHA-keyed caches.
	commits map[string]git.Commit   // sha → Commit
	logs    map[string][]git.Commit // tip sha → ordered ancestry path

	// Head cache.
	headBranch *git.Branch

	// Root commit cache.
	firstCommit string
}

func newCache() *apiCache {
	return &apiCache{
		commits: make(map[string]git.Commit),
		logs:    make(map[string][]git.Commit),
	}
}

func (c *apiCache) getBranches() ([]git.Branch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.branches, c.branchesFetched
}

func (c *apiCache) putBranches(branches []git.Branch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.branches = branches
	c.branchesFetched = true
}

func (c *apiCache) getCommit(sha string) (git.Commit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	commit, ok := c.commits[sha]
	return commit, ok
}

func (c *apiCache) putCommit(commit git.Commit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits[commit.Sha] = commit
}

func (c *apiCache) getLog(tip string) ([]git.Commit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	log, ok := c.logs[tip]
	return log, ok
}

func (c *apiCache) putLog(tip string, log []git.Commit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs[tip] = log
}

func (c *apiCache) getHead() (*git.Branch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headBranch, c.headBranch != nil
}

func (c *apiCache) putHead(branch git.Branch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headBranch = &branch
}

func (c *apiCache) getFirstCommit() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.firstCommit, c.firstCommit != ""
}

func (c *apiCache) putFirstCommit(sha string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.firstCommit = sha
}
