// Package git wraps the git command-line tool behind typed queries.
//
// All repository knowledge comes from running git and parsing its text
// output; nothing reads the repository's on-disk format directly. The
// runner is swappable so higher layers can be tested without a repo.
package git

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// runFunc executes git with the given arguments in dir and returns stdout.
type runFunc func(dir string, args ...string) ([]byte, error)

// Client issues git queries from a fixed working directory.
type Client struct {
	dir string
	log zerolog.Logger
	run runFunc
}

// New returns a Client that runs git inside dir. Queries taking a path
// expect it relative to dir (normally just the file's base name).
func New(dir string, log zerolog.Logger) *Client {
	return &Client{dir: dir, log: log, run: runGit}
}

func runGit(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.Output()
}

// output runs a git query, tracing it at debug level.
func (c *Client) output(args ...string) ([]byte, error) {
	out, err := c.run(c.dir, args...)
	c.log.Debug().
		Str("dir", c.dir).
		Strs("args", args).
		Err(err).
		Msg("git")
	return out, err
}

// exitCode extracts the process exit code from an exec error, or -1 when
// the error is not an exit status (e.g. git not installed).
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// splitLines splits command output into its non-empty trimmed lines.
func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
