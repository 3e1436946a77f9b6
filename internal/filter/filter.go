// Package filter matches branch names against glob-style patterns.
package filter

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Filter matches branch names against a set of glob patterns. An empty
// pattern set matches every name.
type Filter struct {
	globs []glob.Glob
}

// New compiles the given glob patterns into a Filter. Fails on the first
// pattern that does not compile.
func New(patterns []string) (*Filter, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return &Filter{globs: globs}, nil
}

// Matches reports whether name matches any pattern, or true unconditionally
// if the filter has no patterns.
func (f *Filter) Matches(name string) bool {
	if len(f.globs) == 0 {
		return true
	}
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
