package git

import (
	"fmt"
	"strings"
)

// FileStatus holds the two porcelain status columns for a single file.
// A file with no pending changes has both columns zero.
type FileStatus struct {
	Index    byte // staged column (X)
	WorkTree byte // unstaged column (Y)
}

// IsIgnored reports whether path matches an ignore rule.
func (c *Client) IsIgnored(path string) (bool, error) {
	_, err := c.output("check-ignore", "-q", "--", path)
	if err == nil {
		return true, nil
	}
	// check-ignore exits 1 when the path is not ignored.
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("git check-ignore %s: %w", path, err)
}

// Status returns the porcelain XY status codes for path.
func (c *Client) Status(path string) (FileStatus, error) {
	out, err := c.output("status", "--porcelain", "--", path)
	if err != nil {
		return FileStatus{}, fmt.Errorf("git status %s: %w", path, err)
	}

	lines := splitLines(out)
	switch len(lines) {
	case 0:
		return FileStatus{}, nil
	case 1:
		if len(lines[0]) < 3 {
			return FileStatus{}, fmt.Errorf("unexpected status line %q for %s", lines[0], path)
		}
		return FileStatus{Index: lines[0][0], WorkTree: lines[0][1]}, nil
	default:
		return FileStatus{}, fmt.Errorf("expected one status line for %s, got %d", path, len(lines))
	}
}

// HasHistory reports whether path appears in any commit.
func (c *Client) HasHistory(path string) (bool, error) {
	out, err := c.output("log", "-1", "--format=%H", "--", path)
	if err != nil {
		// log exits 128 on an unborn branch; nothing has history yet.
		if exitCode(err) == 128 {
			return false, nil
		}
		return false, fmt.Errorf("git log %s: %w", path, err)
	}
	return len(splitLines(out)) > 0, nil
}

// ChangedFiles lists repository-relative paths with any pending change
// (staged, unstaged or untracked). Deleted files are skipped; there is
// nothing on disk left to inspect.
func (c *Client) ChangedFiles() ([]string, error) {
	out, err := c.output("status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	var files []string
	for _, line := range splitLines(out) {
		if len(line) < 4 {
			continue
		}
		if line[0] == 'D' || line[1] == 'D' {
			continue
		}
		name := line[3:]
		// Renames are listed as "old -> new"; keep the new name.
		if i := strings.Index(name, " -> "); i >= 0 {
			name = name[i+4:]
		}
		files = append(files, strings.Trim(name, `"`))
	}
	return files, nil
}
