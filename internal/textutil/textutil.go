package textutil

import "strings"

// Sentinel is the marker some report generators append as their final line.
const Sentinel = "SP:"

// Span is a half-open [Start, End) index range.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of positions covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Lines splits report text into trimmed lines, dropping a trailing sentinel line.
// Empty input yields no lines.
func Lines(data string) []string {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil
	}

	raw := strings.Split(data, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(l))
	}

	if lines[len(lines)-1] == Sentinel {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// CollapseSpaces replaces every run of spaces and tabs with a single space.
func CollapseSpaces(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !inRun {
				sb.WriteByte(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// Runs returns the maximal contiguous runs of marker in s, in order.
// Indices are byte offsets; report sequences are ASCII.
func Runs(s string, marker byte) []Span {
	var spans []Span
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == marker {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, Span{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(s)})
	}
	return spans
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
