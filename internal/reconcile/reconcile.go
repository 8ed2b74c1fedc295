// Package reconcile remaps a reference structure's per-residue annotation onto
// the coordinate frame of an aligned query sequence.
package reconcile

import (
	"sort"
	"strings"

	"protein-annotator/internal/textutil"
)

const (
	// GapMarker is the alignment gap character.
	GapMarker = '-'
	// Placeholder fills positions present in the structure but missing from its annotation.
	Placeholder = '.'
)

// Reconcile aligns annotation to the query coordinates of one alignment entry.
//
// The first fragmentStart-1 annotation characters precede the aligned fragment
// and are dropped. Every gap run in fragment becomes a run of placeholders
// spliced in at the run's index. Positions covered by deletions, expressed in
// the coordinates after insertion, are then removed. An empty annotation
// yields an empty result.
//
// The second argument is the query anchor of the alignment. It is accepted
// for callers holding a whole entry but never read: the deletion intervals
// are already relative to the anchor, so it does not shift any index.
func Reconcile(annotation string, _ int, fragmentStart int, deletions []textutil.Span, fragment string) string {
	if annotation == "" {
		return ""
	}

	src := annotation[clamp(fragmentStart-1, 0, len(annotation)):]
	insertions := textutil.Runs(strings.TrimSpace(fragment), GapMarker)
	dels := sortedSpans(deletions)

	e := &emitter{dels: dels}
	e.out.Grow(len(src) + totalLen(insertions))

	ins := 0
	for i := 0; i < len(src); i++ {
		for ins < len(insertions) && insertions[ins].Start <= i {
			e.pad(insertions[ins].Len())
			ins++
		}
		e.put(src[i])
	}
	// Runs starting past the end of the source are appended.
	for ; ins < len(insertions); ins++ {
		e.pad(insertions[ins].Len())
	}

	return e.out.String()
}

// emitter writes the insertion-phase stream, skipping positions that fall
// inside a deletion interval.
type emitter struct {
	out  strings.Builder
	dels []textutil.Span
	cur  int
	pos  int
}

func (e *emitter) put(c byte) {
	for e.cur < len(e.dels) && e.pos >= e.dels[e.cur].End {
		e.cur++
	}
	if e.cur >= len(e.dels) || e.pos < e.dels[e.cur].Start {
		e.out.WriteByte(c)
	}
	e.pos++
}

func (e *emitter) pad(n int) {
	for j := 0; j < n; j++ {
		e.put(Placeholder)
	}
}

func sortedSpans(spans []textutil.Span) []textutil.Span {
	out := make([]textutil.Span, 0, len(spans))
	for _, s := range spans {
		if s.Len() > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func totalLen(spans []textutil.Span) int {
	n := 0
	for _, s := range spans {
		n += s.Len()
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
