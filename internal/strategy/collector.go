package strategy

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"fjacquet/pdftext/internal/budget"
	"fjacquet/pdftext/internal/textutils"
)

type fragment struct {
	buffer int // index of the buffer the fragment came from
	offset int
	text   string
}

// collector accumulates validated fragments across one or more buffers.
// Within a buffer, a literal whose start lies inside a range already
// claimed by an earlier pattern is not captured again.
type collector struct {
	maxMatches   int
	maxFragments int

	buffer    int
	claimed   spanSet
	fragments []fragment
	examined  int
}

func newCollector(limits Limits) *collector {
	return &collector{
		maxMatches:   limits.MaxMatchesPerPattern,
		maxFragments: limits.MaxFragments,
	}
}

// full reports whether the fragment cap has been passed.
func (c *collector) full() bool {
	return len(c.fragments) > c.maxFragments
}

// collect applies table to data. Each top-level pattern is preceded by a
// budget check; collection stops once the collector is full.
func (c *collector) collect(ctx context.Context, b *budget.Budget, data []byte, table []textPattern) {
	c.claimed.reset()
	defer func() { c.buffer++ }()

	for _, p := range table {
		if c.full() || b.Check(ctx) != nil {
			return
		}
		c.apply(ctx, b, data, 0, p)
	}
}

// apply runs one pattern over data, whose first byte sits at absolute
// offset base in the current buffer.
func (c *collector) apply(ctx context.Context, b *budget.Budget, data []byte, base int, p textPattern) {
	scanMatches(ctx, b, data, p.re, c.maxMatches, func(loc []int) bool {
		c.examined++
		start, end := loc[2], loc[3]
		if start < 0 {
			return true
		}
		abs := base + start
		if c.claimed.contains(abs) {
			return true
		}

		body := data[start:end]
		if len(p.inner) > 0 {
			for _, inner := range p.inner {
				if c.full() {
					break
				}
				c.apply(ctx, b, body, abs, inner)
			}
			c.claimed.add(abs, base+end)
			return !c.full()
		}

		c.claimed.add(abs, base+end)
		c.accept(abs, p.decode(body), p)
		return !c.full()
	})
}

func (c *collector) accept(offset int, decoded string, p textPattern) {
	if !textutils.IsValidTextContent(decoded) {
		return
	}
	text := textutils.CleanText(decoded)
	if utf8.RuneCountInString(text) < p.minLen || textutils.CountWords(text) < p.minWords {
		return
	}
	c.fragments = append(c.fragments, fragment{buffer: c.buffer, offset: offset, text: text})
}

// text joins the fragments in document order with single spaces.
func (c *collector) text() string {
	sorted := make([]fragment, len(c.fragments))
	copy(sorted, c.fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].buffer != sorted[j].buffer {
			return sorted[i].buffer < sorted[j].buffer
		}
		return sorted[i].offset < sorted[j].offset
	})

	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = f.text
	}
	return textutils.CleanText(strings.Join(parts, " "))
}
