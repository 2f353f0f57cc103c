package git

import (
	"fmt"
	"strings"
)

// TreeState describes where the client's directory sits relative to a
// git repository.
type TreeState int

const (
	// TreeStateOutside means no enclosing repository at all.
	TreeStateOutside TreeState = iota
	// TreeStateGitDir means inside a repository's metadata directory.
	TreeStateGitDir
	// TreeStateWorkTree means inside a plain checked-out work tree.
	TreeStateWorkTree
)

// TreeState probes whether the client's directory is inside a work tree,
// inside the repository's internal metadata store, or outside git entirely.
func (c *Client) TreeState() (TreeState, error) {
	out, err := c.output("rev-parse", "--is-inside-work-tree", "--is-inside-git-dir")
	if err != nil {
		// rev-parse exits 128 outside any repository.
		if exitCode(err) == 128 {
			return TreeStateOutside, nil
		}
		return TreeStateOutside, fmt.Errorf("git rev-parse: %w", err)
	}

	lines := splitLines(out)
	if len(lines) != 2 {
		return TreeStateOutside, fmt.Errorf("unexpected rev-parse output: %q", strings.TrimSpace(string(out)))
	}
	if lines[1] == "true" {
		return TreeStateGitDir, nil
	}
	if lines[0] == "true" {
		return TreeStateWorkTree, nil
	}
	return TreeStateOutside, nil
}

// Root returns the top-level directory of the enclosing work tree.
func (c *Client) Root() (string, error) {
	out, err := c.output("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository")
	}
	lines := splitLines(out)
	if len(lines) != 1 {
		return "", fmt.Errorf("unexpected rev-parse output: %q", strings.TrimSpace(string(out)))
	}
	return lines[0], nil
}

// RelPath returns the canonical repository-relative name of a file that is
// present in the index.
func (c *Client) RelPath(path string) (string, error) {
	out, err := c.output("ls-files", "--full-name", "--", path)
	if err != nil {
		return "", fmt.Errorf("git ls-files %s: %w", path, err)
	}

	lines := splitLines(out)
	if len(lines) != 1 {
		return "", fmt.Errorf("%s has no canonical repository path", path)
	}
	return lines[0], nil
}
