package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DiffScope selects which comparison a diff query runs.
type DiffScope int

const (
	// ScopeUnstaged compares the working tree against the index.
	ScopeUnstaged DiffScope = iota
	// ScopeStaged compares the index against the last commit.
	ScopeStaged
)

// DiffStats returns inserted/deleted line counts for path in the given
// scope. Binary files report zero for both.
func (c *Client) DiffStats(path string, scope DiffScope) (inserted, deleted int, err error) {
	args := []string{"diff"}
	if scope == ScopeStaged {
		args = append(args, "--cached")
	}
	args = append(args, "--numstat", "--", path)

	out, err := c.output(args...)
	if err != nil {
		return 0, 0, fmt.Errorf("git diff %s: %w", path, err)
	}

	lines := splitLines(out)
	if len(lines) == 0 {
		return 0, 0, nil
	}
	if len(lines) > 1 {
		return 0, 0, fmt.Errorf("expected one numstat line for %s, got %d", path, len(lines))
	}

	fields := strings.SplitN(lines[0], "\t", 3)
	if len(fields) != 3 {
		return 0, 0, fmt.Errorf("unexpected numstat line %q for %s", lines[0], path)
	}
	inserted, err = parseCount(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("numstat for %s: %w", path, err)
	}
	deleted, err = parseCount(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("numstat for %s: %w", path, err)
	}
	return inserted, deleted, nil
}

// parseCount parses a numstat count; "-" marks a binary file.
func parseCount(s string) (int, error) {
	if s == "-" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// IndexLineCount returns the number of lines of the file's staged content.
// relPath must be the canonical repository-relative name.
func (c *Client) IndexLineCount(relPath string) (int, error) {
	out, err := c.output("show", ":"+relPath)
	if err != nil {
		return 0, fmt.Errorf("git show :%s: %w", relPath, err)
	}
	return countLines(out), nil
}

// WorkingLineCount returns the number of lines of the file on disk.
func (c *Client) WorkingLineCount(path string) (int, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, path))
	if err != nil {
		return 0, err
	}
	return countLines(data), nil
}

// countLines counts lines the way diff does: a trailing fragment without a
// newline still counts as a line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := strings.Count(string(data), "\n")
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
