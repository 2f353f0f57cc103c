// Package summary turns raw diff line counts into percentage summaries.
package summary

import (
	"fmt"
	"math"
	"strings"
)

// ChangeStats holds line-change counts for one comparison scope.
type ChangeStats struct {
	Inserted int
	Deleted  int
	Total    int // line count of the newer side of the comparison
}

// Summary is the human-oriented percentage view of a ChangeStats.
type Summary struct {
	SizeChangePercent    *int // nil when the prior content was empty
	ModifiedLinesPercent *int // nil when the newer content is empty
	TotalLines           int
	AllNew               bool
}

// Compute derives a Summary from raw diff counts. The prior line count is
// reconstructed as total - inserted + deleted; when it is zero the whole
// content is new and no size-change ratio exists.
func Compute(s ChangeStats) Summary {
	out := Summary{TotalLines: s.Total}

	prior := s.Total - s.Inserted + s.Deleted
	if prior > 0 {
		pct := roundPct(s.Inserted-s.Deleted, prior)
		out.SizeChangePercent = &pct
	} else {
		out.AllNew = true
	}

	if s.Total > 0 {
		pct := roundPct(s.Inserted, s.Total)
		out.ModifiedLinesPercent = &pct
	}

	return out
}

// roundPct computes num*100/den rounded half away from zero, matching
// percentage display conventions.
func roundPct(num, den int) int {
	return int(math.Round(float64(num) * 100 / float64(den)))
}

// String formats the summary the way the report prints it, e.g.
// "Size change: +4% Modified lines: 4% (622 lines total)".
func (s Summary) String() string {
	var parts []string
	if s.SizeChangePercent != nil {
		parts = append(parts, fmt.Sprintf("Size change: %+d%%", *s.SizeChangePercent))
	}
	if s.ModifiedLinesPercent != nil {
		parts = append(parts, fmt.Sprintf("Modified lines: %d%%", *s.ModifiedLinesPercent))
	}
	total := fmt.Sprintf("(%d lines total)", s.TotalLines)
	if s.AllNew {
		total = fmt.Sprintf("(%d lines total, all new)", s.TotalLines)
	}
	parts = append(parts, total)
	return strings.Join(parts, " ")
}
