package bulkfilehash

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter decides which enumerated paths are excluded from hashing.
// Each glob is matched against the slash-normalised full path and against
// the base name, so "*.tmp" excludes temp files anywhere in the tree.
type PathFilter struct {
	globs []string
}

// NewPathFilter creates an empty filter that excludes nothing
func NewPathFilter() *PathFilter {
	return &PathFilter{}
}

// ParseGlobList splits a comma-separated pattern list, trimming whitespace
// and dropping empty entries
func ParseGlobList(list string) []string {
	var patterns []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			patterns = append(patterns, part)
		}
	}
	return patterns
}

// AddPatterns validates and adds exclusion globs to the filter
func (pf *PathFilter) AddPatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
		pf.globs = append(pf.globs, pattern)
	}
	return nil
}

// Patterns returns the filter's globs
func (pf *PathFilter) Patterns() []string {
	if pf == nil {
		return nil
	}
	return pf.globs
}

// Excluded reports whether the path matches any exclusion glob. A nil filter
// excludes nothing.
func (pf *PathFilter) Excluded(path string) bool {
	if pf == nil || len(pf.globs) == 0 {
		return false
	}

	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, glob := range pf.globs {
		if matched, err := doublestar.Match(glob, slashPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(glob, base); err == nil && matched {
			return true
		}
	}

	return false
}
