package bulkfilehash

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreManager loads exclusion patterns from an ignore file. One glob per
// line; blank lines and lines starting with # are skipped.
type IgnoreManager struct {
	ignorePath string
	patterns   []string
	loaded     bool
}

// NewIgnoreManager creates an ignore manager for the given file path
func NewIgnoreManager(ignorePath string) *IgnoreManager {
	return &IgnoreManager{
		ignorePath: ignorePath,
		patterns:   []string{},
	}
}

// LoadIgnorePatterns reads and validates the patterns from the ignore file
func (im *IgnoreManager) LoadIgnorePatterns() error {
	file, err := os.Open(im.ignorePath)
	if err != nil {
		return fmt.Errorf("failed to open ignore file %s: %w", im.ignorePath, err)
	}
	defer file.Close()

	im.patterns = []string{}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !doublestar.ValidatePattern(line) {
			return fmt.Errorf("invalid pattern at line %d of %s: %s", lineNum, im.ignorePath, line)
		}

		im.patterns = append(im.patterns, line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ignore file %s: %w", im.ignorePath, err)
	}

	im.loaded = true
	VerboseLog(2, "loaded %d ignore patterns from %s", len(im.patterns), im.ignorePath)

	return nil
}

// Patterns returns the loaded patterns
func (im *IgnoreManager) Patterns() []string {
	return im.patterns
}

// Loaded reports whether LoadIgnorePatterns has completed successfully
func (im *IgnoreManager) Loaded() bool {
	return im.loaded
}
