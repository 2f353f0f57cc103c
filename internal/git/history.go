package git

import (
	"fmt"
)

// logDateArgs formats each commit as "2026-08-23 (3 days ago)".
var logDateArgs = []string{"--format=%ad (%ar)", "--date=format:%Y-%m-%d"}

// CreationDate returns the date of the commit that first added path.
// Renames are followed when the history is unambiguous; when following
// yields several add commits the lookup retries without following and
// approximate is true, so callers can annotate the result.
func (c *Client) CreationDate(path string) (date string, approximate bool, err error) {
	args := append([]string{"log", "--follow", "--diff-filter=A"}, logDateArgs...)
	out, err := c.output(append(args, "--", path)...)
	if err != nil {
		return "", false, fmt.Errorf("git log --follow %s: %w", path, err)
	}
	if lines := splitLines(out); len(lines) == 1 {
		return lines[0], false, nil
	}

	// Ambiguous rename history. Retry without following; the result then
	// dates the current name rather than the original file.
	args = append([]string{"log", "--diff-filter=A"}, logDateArgs...)
	out, err = c.output(append(args, "--", path)...)
	if err != nil {
		return "", false, fmt.Errorf("git log %s: %w", path, err)
	}
	lines := splitLines(out)
	if len(lines) != 1 {
		return "", false, fmt.Errorf("cannot determine creation date of %s (%d add commits)", path, len(lines))
	}
	return lines[0], true, nil
}

// LastModified returns the date of the most recent commit touching path.
// Renames are never followed here: a rename is itself a modification.
func (c *Client) LastModified(path string) (string, error) {
	args := append([]string{"log", "-1"}, logDateArgs...)
	out, err := c.output(append(args, "--", path)...)
	if err != nil {
		return "", fmt.Errorf("git log -1 %s: %w", path, err)
	}
	lines := splitLines(out)
	if len(lines) != 1 {
		return "", fmt.Errorf("no modification history for %s", path)
	}
	return lines[0], nil
}

// AuthorNames returns the author of every commit that added or modified
// path, one entry per commit, newest first.
func (c *Client) AuthorNames(path string) ([]string, error) {
	out, err := c.output("log", "--diff-filter=AM", "--format=%an", "--", path)
	if err != nil {
		return nil, fmt.Errorf("git log --diff-filter=AM %s: %w", path, err)
	}
	return splitLines(out), nil
}
