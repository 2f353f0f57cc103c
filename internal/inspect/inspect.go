// Package inspect classifies a file's version-control state and builds the
// immutable report record the formatter prints.
package inspect

import (
	"fmt"
	"sort"

	"github.com/yejune/git-finfo/internal/git"
	"github.com/yejune/git-finfo/internal/summary"
)

// Classification is the overall state of a file relative to its repository.
type Classification int

const (
	// OutsideRepo: the file is not inside any repository.
	OutsideRepo Classification = iota
	// InternalRepoFile: the file lives inside the repository metadata store.
	InternalRepoFile
	// Ignored: the file matches an ignore rule.
	Ignored
	// Untracked: no history and nothing staged.
	Untracked
	// TrackedNoChanges: committed history, clean index and work tree.
	TrackedNoChanges
	// NewWithChanges: staged but never committed.
	NewWithChanges
	// TrackedWithChanges: committed history plus staged or unstaged changes.
	TrackedWithChanges
)

func (c Classification) String() string {
	switch c {
	case OutsideRepo:
		return "not in a git repository"
	case InternalRepoFile:
		return "inside the repository metadata directory"
	case Ignored:
		return "ignored"
	case Untracked:
		return "untracked"
	case TrackedNoChanges:
		return "tracked, no changes"
	case NewWithChanges:
		return "new"
	case TrackedWithChanges:
		return "tracked"
	}
	return "unknown"
}

// Querier is the set of git queries the inspector needs. *git.Client
// satisfies it; tests substitute a fake.
type Querier interface {
	TreeState() (git.TreeState, error)
	IsIgnored(path string) (bool, error)
	Status(path string) (git.FileStatus, error)
	HasHistory(path string) (bool, error)
	DiffStats(path string, scope git.DiffScope) (inserted, deleted int, err error)
	RelPath(path string) (string, error)
	IndexLineCount(relPath string) (int, error)
	WorkingLineCount(path string) (int, error)
	CreationDate(path string) (date string, approximate bool, err error)
	LastModified(path string) (string, error)
	AuthorNames(path string) ([]string, error)
}

// FileReport is the complete result of one inspection. It is built once and
// handed to the formatter; nothing mutates it afterwards.
type FileReport struct {
	Path     string
	Class    Classification
	Staged   bool
	Modified bool

	StagedSummary   *summary.Summary
	UnstagedSummary *summary.Summary

	Created       string
	CreatedApprox bool // rename-following was abandoned; date ignores renames
	LastModified  string
	TopAuthor     string
}

// Inspector runs the classification sequence against a Querier.
type Inspector struct {
	Queries Querier
	// WithHistory additionally looks up creation/modification dates and the
	// top contributor for tracked files.
	WithHistory bool
}

// Inspect classifies path and fills in whatever detail its state allows.
// The query order matters: each guard short-circuits the rest, so an
// ignored file never reaches the status probe and gets no summaries.
func (in *Inspector) Inspect(path string) (*FileReport, error) {
	r := &FileReport{Path: path}

	state, err := in.Queries.TreeState()
	if err != nil {
		return nil, err
	}
	switch state {
	case git.TreeStateOutside:
		r.Class = OutsideRepo
		return r, nil
	case git.TreeStateGitDir:
		r.Class = InternalRepoFile
		return r, nil
	}

	ignored, err := in.Queries.IsIgnored(path)
	if err != nil {
		return nil, err
	}
	if ignored {
		// A file both ignored and tracked also lands here; the original
		// behavior for that combination is undefined and we keep it so.
		r.Class = Ignored
		return r, nil
	}

	st, err := in.Queries.Status(path)
	if err != nil {
		return nil, err
	}
	if st.Index == 'D' || st.WorkTree == 'D' {
		return nil, fmt.Errorf("%s is staged or marked for deletion; cannot report on it", path)
	}
	r.Staged = st.Index == 'A' || st.Index == 'M'
	r.Modified = st.WorkTree == 'M'

	tracked, err := in.Queries.HasHistory(path)
	if err != nil {
		return nil, err
	}

	switch {
	case !tracked && !r.Staged:
		r.Class = Untracked
		return r, nil
	case !tracked:
		// Renamed files also land here: the rename's add half makes them
		// look brand new. Known limitation.
		r.Class = NewWithChanges
	case r.Staged || r.Modified:
		r.Class = TrackedWithChanges
	default:
		r.Class = TrackedNoChanges
	}

	if r.Staged {
		s, err := in.stagedSummary(path)
		if err != nil {
			return nil, err
		}
		r.StagedSummary = s
	}
	if r.Modified {
		s, err := in.unstagedSummary(path)
		if err != nil {
			return nil, err
		}
		r.UnstagedSummary = s
	}

	if in.WithHistory && tracked {
		if err := in.enrich(r, path); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// stagedSummary compares the index against the last commit. The baseline
// line count is the file's staged content.
func (in *Inspector) stagedSummary(path string) (*summary.Summary, error) {
	inserted, deleted, err := in.Queries.DiffStats(path, git.ScopeStaged)
	if err != nil {
		return nil, err
	}
	rel, err := in.Queries.RelPath(path)
	if err != nil {
		return nil, err
	}
	total, err := in.Queries.IndexLineCount(rel)
	if err != nil {
		return nil, err
	}
	s := summary.Compute(summary.ChangeStats{Inserted: inserted, Deleted: deleted, Total: total})
	return &s, nil
}

// unstagedSummary compares the working file against the index. The baseline
// line count is the file on disk.
func (in *Inspector) unstagedSummary(path string) (*summary.Summary, error) {
	inserted, deleted, err := in.Queries.DiffStats(path, git.ScopeUnstaged)
	if err != nil {
		return nil, err
	}
	total, err := in.Queries.WorkingLineCount(path)
	if err != nil {
		return nil, err
	}
	s := summary.Compute(summary.ChangeStats{Inserted: inserted, Deleted: deleted, Total: total})
	return &s, nil
}

func (in *Inspector) enrich(r *FileReport, path string) error {
	created, approx, err := in.Queries.CreationDate(path)
	if err != nil {
		return err
	}
	r.Created = created
	r.CreatedApprox = approx

	r.LastModified, err = in.Queries.LastModified(path)
	if err != nil {
		return err
	}

	names, err := in.Queries.AuthorNames(path)
	if err != nil {
		return err
	}
	r.TopAuthor = topAuthor(names)
	return nil
}

// topAuthor picks the most frequent name. Equal counts fall back to the
// alphabetically first name, which is what the stable sort surfaces.
func topAuthor(names []string) string {
	if len(names) == 0 {
		return ""
	}

	counts := make(map[string]int, len(names))
	var uniq []string
	for _, n := range names {
		if counts[n] == 0 {
			uniq = append(uniq, n)
		}
		counts[n]++
	}

	sort.Strings(uniq)
	sort.SliceStable(uniq, func(i, j int) bool {
		return counts[uniq[i]] > counts[uniq[j]]
	})
	return uniq[0]
}
