// Package report renders a FileReport for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/yejune/git-finfo/internal/inspect"
)

// Render writes the report at the given verbosity level. Level 0 prints
// only the classification line, level 1 adds change summaries, level 2 and
// above adds history details.
func Render(w io.Writer, r *inspect.FileReport, verbosity int) {
	fmt.Fprintf(w, "%s: %s\n", r.Path, classLabel(r))
	if verbosity < 1 {
		return
	}

	if r.StagedSummary != nil {
		fmt.Fprintf(w, "  Staged: %s\n", r.StagedSummary)
	}
	if r.UnstagedSummary != nil {
		fmt.Fprintf(w, "  Unstaged: %s\n", r.UnstagedSummary)
	}
	if verbosity < 2 {
		return
	}

	if r.Created != "" {
		line := "  Created: " + r.Created
		if r.CreatedApprox {
			line += color.YellowString(" (warning: rename history ambiguous, date ignores renames)")
		}
		fmt.Fprintln(w, line)
	}
	if r.LastModified != "" {
		fmt.Fprintf(w, "  Last modified: %s\n", r.LastModified)
	}
	if r.TopAuthor != "" {
		fmt.Fprintf(w, "  Top contributor: %s\n", r.TopAuthor)
	}
}

func classLabel(r *inspect.FileReport) string {
	switch r.Class {
	case inspect.OutsideRepo:
		return color.RedString("not in a git repository")
	case inspect.InternalRepoFile:
		return color.YellowString("inside the repository metadata directory")
	case inspect.Ignored:
		return color.YellowString("ignored")
	case inspect.Untracked:
		return color.YellowString("untracked")
	case inspect.TrackedNoChanges:
		return color.GreenString("tracked, no changes")
	case inspect.NewWithChanges:
		label := "new, staged"
		if r.Modified {
			label += " and unstaged changes"
		}
		return color.CyanString(label)
	case inspect.TrackedWithChanges:
		return color.CyanString("tracked, " + changeSuffix(r))
	}
	return "unknown"
}

func changeSuffix(r *inspect.FileReport) string {
	switch {
	case r.Staged && r.Modified:
		return "staged and unstaged changes"
	case r.Staged:
		return "staged changes"
	default:
		return "unstaged changes"
	}
}
