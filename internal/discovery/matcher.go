// Package discovery finds the test files a resolved configuration selects.
package discovery

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/wesleyorama2/runcfg/internal/config"
)

// Matcher matches slash separated paths against test match globs.
//
// "*" and "?" never cross a "/", "**" does, and a "**/" segment may also
// match no directories at all, so "**/*.test.ts" matches "a.test.ts".
type Matcher struct {
	patterns []string
	globs    [][]glob.Glob
}

// NewMatcher compiles patterns. An empty pattern list matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{
		patterns: append([]string(nil), patterns...),
		globs:    make([][]glob.Glob, 0, len(patterns)),
	}

	for _, pattern := range patterns {
		var variants []glob.Glob
		for _, expanded := range expandGlobstar(pattern) {
			g, err := config.CompileGlob(expanded)
			if err != nil {
				return nil, fmt.Errorf("invalid test match pattern %q: %w", pattern, err)
			}
			variants = append(variants, g)
		}
		m.globs = append(m.globs, variants)
	}

	return m, nil
}

// Match reports whether path matches any pattern.
func (m *Matcher) Match(path string) bool {
	_, ok := m.MatchPattern(path)
	return ok
}

// MatchPattern returns the first pattern that matches path.
func (m *Matcher) MatchPattern(path string) (string, bool) {
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")

	for i, variants := range m.globs {
		for _, g := range variants {
			if g.Match(path) {
				return m.patterns[i], true
			}
		}
	}
	return "", false
}

// expandGlobstar returns pattern plus every variant with one or more
// "**/" segments collapsed to nothing.
func expandGlobstar(pattern string) []string {
	idx := globstarIndex(pattern)
	if idx < 0 {
		return []string{pattern}
	}

	head, tail := pattern[:idx], pattern[idx+len("**/"):]
	var out []string
	for _, rest := range expandGlobstar(tail) {
		out = append(out, head+"**/"+rest, head+rest)
	}
	return out
}

// globstarIndex finds the first "**/" that forms a whole path segment.
func globstarIndex(pattern string) int {
	for offset := 0; ; {
		i := strings.Index(pattern[offset:], "**/")
		if i < 0 {
			return -1
		}
		i += offset
		if i == 0 || pattern[i-1] == '/' {
			return i
		}
		offset = i + len("**/")
	}
}
