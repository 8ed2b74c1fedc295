package parser

import (
	"strings"

	"protein-annotator/internal/textutil"
)

// ParseSequence reads a FASTA-style sequence report. The optional ">" line
// becomes the label; all remaining lines form the residue string.
func ParseSequence(data string) (label, sequence string) {
	lines := textutil.Lines(data)
	if len(lines) == 0 {
		return "", ""
	}

	if strings.HasPrefix(lines[0], ">") {
		label = lines[0][1:]
		lines = lines[1:]
	}

	sequence = strings.Join(lines, "")
	sequence = strings.ReplaceAll(sequence, "\r", "")
	label = strings.ReplaceAll(label, "\r", "")
	return label, sequence
}

// ParseAnnotation reads a per-structure annotation report: the first line is a
// header and the remaining lines are concatenated verbatim.
func ParseAnnotation(data string) string {
	parts := strings.Split(data, "\n")
	if len(parts) < 2 {
		return ""
	}
	return strings.ReplaceAll(strings.Join(parts[1:], ""), "\r", "")
}
