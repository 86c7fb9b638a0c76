package strategy

import (
	"context"
	"regexp"

	"fjacquet/pdftext/internal/budget"
)

// Large buffers are searched window by window so the budget is polled
// between windows. A match touching the end of a truncated window is retried
// from its start, since `\b` and lazy quantifiers treat the cut as an end.
const (
	scanWindow  = 1 << 20
	scanOverlap = 64 << 10
)

// scanMatches calls fn with the absolute submatch indices of successive
// non-overlapping matches of re in data, stopping after max matches, when fn
// returns false, or when ctx or b runs out. It returns the number of matches
// passed to fn.
func scanMatches(ctx context.Context, b *budget.Budget, data []byte, re *regexp.Regexp, max int, fn func(loc []int) bool) int {
	pos, seen := 0, 0
	for pos < len(data) && seen < max {
		if b != nil && b.Check(ctx) != nil {
			break
		}
		end := pos + scanWindow + scanOverlap
		if end > len(data) {
			end = len(data)
		}
		loc := re.FindSubmatchIndex(data[pos:end])
		if loc == nil {
			if end == len(data) {
				break
			}
			pos += scanWindow
			continue
		}
		if end < len(data) && pos+loc[1] == end && loc[0] > 0 {
			pos += loc[0]
			continue
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}
		seen++
		if !fn(loc) {
			break
		}
		if loc[1] > loc[0] {
			pos = loc[1]
		} else {
			pos = loc[0] + 1
		}
	}
	return seen
}
