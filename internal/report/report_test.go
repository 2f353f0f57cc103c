package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/yejune/git-finfo/internal/inspect"
	"github.com/yejune/git-finfo/internal/summary"
)

func init() {
	// Stable output regardless of the test terminal.
	color.NoColor = true
}

func render(r *inspect.FileReport, verbosity int) string {
	var buf bytes.Buffer
	Render(&buf, r, verbosity)
	return buf.String()
}

func stagedReport() *inspect.FileReport {
	staged := summary.Compute(summary.ChangeStats{Inserted: 22, Deleted: 0, Total: 622})
	return &inspect.FileReport{
		Path:          "big.go",
		Class:         inspect.TrackedWithChanges,
		Staged:        true,
		StagedSummary: &staged,
		Created:       "2024-01-03 (2 years ago)",
		LastModified:  "2026-08-01 (3 weeks ago)",
		TopAuthor:     "Test User",
	}
}

func TestRenderVerbosityLevels(t *testing.T) {
	r := stagedReport()

	t.Run("level 0 classification only", func(t *testing.T) {
		out := render(r, 0)
		if out != "big.go: tracked, staged changes\n" {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("level 1 adds summaries", func(t *testing.T) {
		out := render(r, 1)
		if !strings.Contains(out, "Staged: Size change: +4% Modified lines: 4% (622 lines total)") {
			t.Errorf("missing staged summary: %q", out)
		}
		if strings.Contains(out, "Created") || strings.Contains(out, "Top contributor") {
			t.Errorf("level 1 should not show history: %q", out)
		}
	})

	t.Run("level 2 adds history", func(t *testing.T) {
		out := render(r, 2)
		for _, want := range []string{
			"Created: 2024-01-03 (2 years ago)",
			"Last modified: 2026-08-01 (3 weeks ago)",
			"Top contributor: Test User",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in %q", want, out)
			}
		}
	})
}

func TestRenderNewFile(t *testing.T) {
	staged := summary.Compute(summary.ChangeStats{Inserted: 17, Deleted: 0, Total: 17})
	r := &inspect.FileReport{
		Path:          "new.txt",
		Class:         inspect.NewWithChanges,
		Staged:        true,
		StagedSummary: &staged,
	}

	out := render(r, 1)
	if !strings.Contains(out, "new.txt: new, staged\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Modified lines: 100% (17 lines total, all new)") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderCleanTrackedFile(t *testing.T) {
	r := &inspect.FileReport{Path: "a.go", Class: inspect.TrackedNoChanges}
	out := render(r, 1)
	if out != "a.go: tracked, no changes\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderRenameWarning(t *testing.T) {
	r := stagedReport()
	r.CreatedApprox = true
	out := render(r, 2)
	if !strings.Contains(out, "(warning: rename history ambiguous, date ignores renames)") {
		t.Errorf("missing rename warning: %q", out)
	}
}

func TestRenderSimpleClasses(t *testing.T) {
	tests := []struct {
		class inspect.Classification
		want  string
	}{
		{inspect.OutsideRepo, "x: not in a git repository\n"},
		{inspect.InternalRepoFile, "x: inside the repository metadata directory\n"},
		{inspect.Ignored, "x: ignored\n"},
		{inspect.Untracked, "x: untracked\n"},
	}
	for _, tt := range tests {
		r := &inspect.FileReport{Path: "x", Class: tt.class}
		if out := render(r, 2); out != tt.want {
			t.Errorf("class %v: output = %q, want %q", tt.class, out, tt.want)
		}
	}
}
