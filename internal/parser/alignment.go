package parser

import (
	"strconv"
	"strings"

	"protein-annotator/internal/protein"
	"protein-annotator/internal/textutil"
)

const (
	alignmentSkip = 2
	// GapMarker is the alignment gap character.
	GapMarker = '-'
	// NoColorScheme disables per-residue colouring of an alignment in the viewer.
	NoColorScheme = "ALI"
)

type alignState int

const (
	expectHeader alignState = iota
	expectPosition
	expectData
)

// AlignmentOptions controls alignment report parsing.
type AlignmentOptions struct {
	// Limit caps the number of records read; values below 1 mean 1.
	Limit int
	// ShowAlignments keeps the viewer's alignment colouring enabled.
	ShowAlignments bool
}

// ParseAlignments reads a pairwise alignment report. After two header lines
// the report repeats three-line records:
//
//	>   1.000e-15 >1vhx_A 150aa (NONE) ... :_: Frame:0 Round:0 Length:150
//	14 SQEIQ--TPAIP...
//	10 SSTALAGSITEN...
//
// The first line names the matched structure, the second carries the query
// anchor and query fragment, and the third the structure anchor and aligned
// structure fragment. Gap runs in the query fragment become deletion
// intervals. Parsing stops when a record beyond the limit begins.
func ParseAlignments(data string, opts AlignmentOptions) []protein.AlignmentEntry {
	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}

	lines := textutil.Lines(data)
	var (
		entries []protein.AlignmentEntry
		cur     protein.AlignmentEntry
		state   = expectHeader
		count   int
	)

	for i := alignmentSkip; i < len(lines); i++ {
		l := lines[i]

		if strings.HasPrefix(l, ">") {
			count++
			if count > limit {
				break
			}
			cur = parseAlignmentHeader(l)
			state = expectPosition
			continue
		}

		switch state {
		case expectPosition:
			start, fragment, ok := splitAnchored(l)
			if !ok {
				continue
			}
			cur.Start = start
			cur.Gaps = textutil.Runs(fragment, GapMarker)
			state = expectData

		case expectData:
			fragStart, fragment, ok := splitAnchored(l)
			if !ok {
				continue
			}
			cur.FragmentStart = fragStart
			cur.Sequence = fragment
			if !opts.ShowAlignments {
				cur.ColorScheme = NoColorScheme
			}
			entries = append(entries, cur)
			state = expectHeader
		}
	}
	return entries
}

// parseAlignmentHeader extracts the description and compact structure label.
// The description is the text after the second ">" up to the first ":".
func parseAlignmentHeader(l string) protein.AlignmentEntry {
	var desc string
	if parts := strings.Split(l[1:], ">"); len(parts) > 1 {
		desc = parts[1]
	}
	desc = strings.TrimSpace(strings.Split(desc, ":")[0])
	return protein.AlignmentEntry{
		Label:       StructureKey(desc),
		Description: desc,
	}
}

// StructureKey derives the annotation lookup key from a description such as
// "1vhx_A 150aa ...": the first token with its chain separator removed.
func StructureKey(desc string) string {
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return ""
	}
	return strings.Replace(fields[0], "_", "", 1)
}

// splitAnchored splits "<offset> <fragment>" lines.
func splitAnchored(l string) (int, string, bool) {
	fields := strings.Fields(l)
	if len(fields) < 2 {
		return 0, "", false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", false
	}
	return n, fields[1], true
}
