package inspect

import (
	"strings"
	"testing"

	"github.com/yejune/git-finfo/internal/git"
)

// fakeQuerier scripts git answers so classification runs without a repo.
type fakeQuerier struct {
	state    git.TreeState
	ignored  bool
	status   git.FileStatus
	tracked  bool
	staged   [2]int // inserted, deleted for ScopeStaged
	unstaged [2]int
	indexLC  int
	workLC   int
	created  string
	approx   bool
	modified string
	authors  []string

	calls []string
}

func (f *fakeQuerier) TreeState() (git.TreeState, error) {
	f.calls = append(f.calls, "tree")
	return f.state, nil
}

func (f *fakeQuerier) IsIgnored(string) (bool, error) {
	f.calls = append(f.calls, "ignored")
	return f.ignored, nil
}

func (f *fakeQuerier) Status(string) (git.FileStatus, error) {
	f.calls = append(f.calls, "status")
	return f.status, nil
}

func (f *fakeQuerier) HasHistory(string) (bool, error) {
	f.calls = append(f.calls, "history")
	return f.tracked, nil
}

func (f *fakeQuerier) DiffStats(_ string, scope git.DiffScope) (int, int, error) {
	f.calls = append(f.calls, "diff")
	if scope == git.ScopeStaged {
		return f.staged[0], f.staged[1], nil
	}
	return f.unstaged[0], f.unstaged[1], nil
}

func (f *fakeQuerier) RelPath(path string) (string, error)  { return path, nil }
func (f *fakeQuerier) IndexLineCount(string) (int, error)   { return f.indexLC, nil }
func (f *fakeQuerier) WorkingLineCount(string) (int, error) { return f.workLC, nil }

func (f *fakeQuerier) CreationDate(string) (string, bool, error) {
	f.calls = append(f.calls, "created")
	return f.created, f.approx, nil
}

func (f *fakeQuerier) LastModified(string) (string, error) {
	f.calls = append(f.calls, "modified")
	return f.modified, nil
}

func (f *fakeQuerier) AuthorNames(string) ([]string, error) {
	f.calls = append(f.calls, "authors")
	return f.authors, nil
}

func TestInspectClassification(t *testing.T) {
	tests := []struct {
		name string
		q    fakeQuerier
		want Classification
	}{
		{
			name: "outside any repo",
			q:    fakeQuerier{state: git.TreeStateOutside},
			want: OutsideRepo,
		},
		{
			name: "inside git dir",
			q:    fakeQuerier{state: git.TreeStateGitDir},
			want: InternalRepoFile,
		},
		{
			name: "ignored",
			q:    fakeQuerier{state: git.TreeStateWorkTree, ignored: true},
			want: Ignored,
		},
		{
			name: "untracked",
			q: fakeQuerier{
				state:  git.TreeStateWorkTree,
				status: git.FileStatus{Index: '?', WorkTree: '?'},
			},
			want: Untracked,
		},
		{
			name: "tracked and clean",
			q: fakeQuerier{
				state:   git.TreeStateWorkTree,
				tracked: true,
			},
			want: TrackedNoChanges,
		},
		{
			name: "staged but never committed",
			q: fakeQuerier{
				state:   git.TreeStateWorkTree,
				status:  git.FileStatus{Index: 'A', WorkTree: ' '},
				staged:  [2]int{17, 0},
				indexLC: 17,
			},
			want: NewWithChanges,
		},
		{
			name: "tracked with staged changes",
			q: fakeQuerier{
				state:   git.TreeStateWorkTree,
				tracked: true,
				status:  git.FileStatus{Index: 'M', WorkTree: ' '},
				staged:  [2]int{22, 0},
				indexLC: 622,
			},
			want: TrackedWithChanges,
		},
		{
			name: "tracked with unstaged changes",
			q: fakeQuerier{
				state:    git.TreeStateWorkTree,
				tracked:  true,
				status:   git.FileStatus{Index: ' ', WorkTree: 'M'},
				unstaged: [2]int{3, 1},
				workLC:   50,
			},
			want: TrackedWithChanges,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Inspector{Queries: &tt.q}
			r, err := in.Inspect("file.txt")
			if err != nil {
				t.Fatalf("Inspect failed: %v", err)
			}
			if r.Class != tt.want {
				t.Errorf("Class = %v, want %v", r.Class, tt.want)
			}
		})
	}
}

func TestInspectShortCircuits(t *testing.T) {
	t.Run("ignored file gets no summaries", func(t *testing.T) {
		q := &fakeQuerier{state: git.TreeStateWorkTree, ignored: true}
		r, err := (&Inspector{Queries: q}).Inspect("gen.log")
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if r.StagedSummary != nil || r.UnstagedSummary != nil {
			t.Error("ignored file should have no summaries")
		}
		for _, call := range q.calls {
			if call == "status" || call == "diff" {
				t.Errorf("ignored file should not reach the %s probe", call)
			}
		}
	})

	t.Run("outside repo stops at the tree probe", func(t *testing.T) {
		q := &fakeQuerier{state: git.TreeStateOutside}
		if _, err := (&Inspector{Queries: q}).Inspect("x"); err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if len(q.calls) != 1 || q.calls[0] != "tree" {
			t.Errorf("calls = %v, want [tree]", q.calls)
		}
	})
}

func TestInspectDeletedIsFatal(t *testing.T) {
	q := &fakeQuerier{
		state:  git.TreeStateWorkTree,
		status: git.FileStatus{Index: 'D', WorkTree: ' '},
	}
	_, err := (&Inspector{Queries: q}).Inspect("gone.txt")
	if err == nil {
		t.Fatal("expected error for a deleted file")
	}
	if !strings.Contains(err.Error(), "deletion") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInspectNewFileSummary(t *testing.T) {
	// New file with 17 inserted lines, not yet committed.
	q := &fakeQuerier{
		state:   git.TreeStateWorkTree,
		status:  git.FileStatus{Index: 'A', WorkTree: ' '},
		staged:  [2]int{17, 0},
		indexLC: 17,
	}
	r, err := (&Inspector{Queries: q}).Inspect("new.txt")
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if r.Class != NewWithChanges {
		t.Fatalf("Class = %v, want NewWithChanges", r.Class)
	}
	if r.StagedSummary == nil {
		t.Fatal("expected a staged summary")
	}
	if got := r.StagedSummary.String(); got != "Modified lines: 100% (17 lines total, all new)" {
		t.Errorf("summary = %q", got)
	}
}

func TestInspectStagedSummary(t *testing.T) {
	// Tracked file, index content 600+22 lines, staged diff +22/-0.
	q := &fakeQuerier{
		state:   git.TreeStateWorkTree,
		tracked: true,
		status:  git.FileStatus{Index: 'M', WorkTree: ' '},
		staged:  [2]int{22, 0},
		indexLC: 622,
	}
	r, err := (&Inspector{Queries: q}).Inspect("big.go")
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if r.StagedSummary == nil {
		t.Fatal("expected a staged summary")
	}
	if got := r.StagedSummary.String(); got != "Size change: +4% Modified lines: 4% (622 lines total)" {
		t.Errorf("summary = %q", got)
	}
	if r.UnstagedSummary != nil {
		t.Error("clean work tree should have no unstaged summary")
	}
}

func TestInspectHistory(t *testing.T) {
	q := &fakeQuerier{
		state:    git.TreeStateWorkTree,
		tracked:  true,
		created:  "2024-01-03 (2 years ago)",
		modified: "2026-08-01 (3 weeks ago)",
		authors:  []string{"Bea", "Al", "Bea"},
	}

	t.Run("disabled by default", func(t *testing.T) {
		r, err := (&Inspector{Queries: q}).Inspect("a.go")
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if r.Created != "" || r.TopAuthor != "" {
			t.Error("history should not be looked up unless requested")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		r, err := (&Inspector{Queries: q, WithHistory: true}).Inspect("a.go")
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if r.Created != "2024-01-03 (2 years ago)" {
			t.Errorf("Created = %q", r.Created)
		}
		if r.LastModified != "2026-08-01 (3 weeks ago)" {
			t.Errorf("LastModified = %q", r.LastModified)
		}
		if r.TopAuthor != "Bea" {
			t.Errorf("TopAuthor = %q, want Bea", r.TopAuthor)
		}
	})

	t.Run("approximate creation date carries through", func(t *testing.T) {
		aq := &fakeQuerier{
			state:    git.TreeStateWorkTree,
			tracked:  true,
			created:  "2019-05-05 (7 years ago)",
			approx:   true,
			modified: "2026-08-01 (3 weeks ago)",
			authors:  []string{"Al"},
		}
		r, err := (&Inspector{Queries: aq, WithHistory: true}).Inspect("moved.go")
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if !r.CreatedApprox {
			t.Error("CreatedApprox should carry the querier's approximate flag")
		}
		if r.Created != "2019-05-05 (7 years ago)" {
			t.Errorf("Created = %q", r.Created)
		}
	})

	t.Run("untracked files have no history to fetch", func(t *testing.T) {
		uq := &fakeQuerier{
			state:  git.TreeStateWorkTree,
			status: git.FileStatus{Index: '?', WorkTree: '?'},
		}
		r, err := (&Inspector{Queries: uq, WithHistory: true}).Inspect("b.go")
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if r.Created != "" {
			t.Error("untracked file should have no creation date")
		}
	})
}

func TestTopAuthor(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"Al"}, "Al"},
		{"majority wins", []string{"Bea", "Al", "Bea"}, "Bea"},
		{"tie breaks alphabetically", []string{"Zoe", "Al", "Zoe", "Al"}, "Al"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topAuthor(tt.names); got != tt.want {
				t.Errorf("topAuthor(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}
