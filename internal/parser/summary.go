package parser

import (
	"fmt"
	"strings"

	"protein-annotator/internal/protein"
)

// Divider separates the sub-reports of the composite summary.
var Divider = strings.Repeat("-", 120)

// SummarySections is the number of sub-reports in a well-formed summary.
const SummarySections = 6

// Positions of each sub-report in a well-formed summary.
const (
	PosProperties = iota
	PosLowComplexity
	PosCoiledCoil
	PosTransmembrane
	PosPropensity
	PosDisorder
)

// SectionError reports a summary whose divider count does not match the
// expected section layout.
type SectionError struct {
	Got, Want int
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("summary has %d sections, want %d", e.Got, e.Want)
}

// SplitSections splits text on every divider occurrence, keeping order.
func SplitSections(data, divider string) []string {
	return strings.Split(data, divider)
}

// SplitSummary splits a composite summary and requires exactly six sections.
func SplitSummary(data string) ([]string, error) {
	sections := SplitSections(data, Divider)
	if len(sections) != SummarySections {
		return sections, &SectionError{Got: len(sections), Want: SummarySections}
	}
	return sections, nil
}

// SummaryParser routes each summary sub-report to its parser by header text.
type SummaryParser struct {
	// parsers are indexed by physical position in a well-formed summary.
	parsers []SectionParser
	// order is the sequence in which routed sections are applied.
	order []int
}

// NewSummaryParser creates a summary parser using pal for presentation hints.
func NewSummaryParser(pal *protein.Palette) *SummaryParser {
	parsers := make([]SectionParser, SummarySections)
	parsers[PosProperties] = sectionFunc{"properties", HeaderProperties, func(s string, p *protein.Protein) {
		for k, v := range ParseProperties(s) {
			p.Properties[k] = v
		}
	}}
	parsers[PosLowComplexity] = sectionFunc{"low-complexity", HeaderLowComplexity, func(s string, p *protein.Protein) {
		p.Features = append(p.Features, ParseMaskedRuns(s, HeaderLowComplexity, protein.FeatureLowComplexity, pal)...)
	}}
	parsers[PosCoiledCoil] = sectionFunc{"coiled-coil", HeaderCoiledCoil, func(s string, p *protein.Protein) {
		p.Features = append(p.Features, ParseMaskedRuns(s, HeaderCoiledCoil, protein.FeatureCoiledCoil, pal)...)
	}}
	parsers[PosTransmembrane] = sectionFunc{"transmembrane", HeaderTransmembrane, func(s string, p *protein.Protein) {
		p.Features = append(p.Features, ParseTransmembrane(s, pal)...)
	}}
	parsers[PosPropensity] = sectionFunc{"structural-propensity", HeaderPropensity, func(s string, p *protein.Protein) {
		coil, helix, strand := ParsePropensity(s, pal)
		p.Tracks = append(p.Tracks, coil, helix, strand)
	}}
	parsers[PosDisorder] = sectionFunc{"disorder", HeaderDisorder, func(s string, p *protein.Protein) {
		p.Tracks = append(p.Tracks, ParseDisorder(s, pal))
	}}

	return &SummaryParser{
		parsers: parsers,
		order:   []int{PosDisorder, PosPropensity, PosTransmembrane, PosLowComplexity, PosCoiledCoil, PosProperties},
	}
}

// Route assigns each section of data to a parser position. Sections are
// matched by header; a header-less section falls back to its physical
// position only when the summary has exactly six sections.
func (sp *SummaryParser) Route(data string) map[int]string {
	sections, layoutErr := SplitSummary(data)
	routed := make(map[int]string, len(sections))

	var unmatched []int
	for i, s := range sections {
		pos := sp.match(s)
		if pos < 0 {
			unmatched = append(unmatched, i)
			continue
		}
		if _, dup := routed[pos]; !dup {
			routed[pos] = s
		}
	}

	if layoutErr == nil {
		for _, i := range unmatched {
			if _, taken := routed[i]; !taken {
				routed[i] = sections[i]
			}
		}
	}
	return routed
}

func (sp *SummaryParser) match(section string) int {
	for pos, p := range sp.parsers {
		if strings.Contains(section, p.Header()) {
			return pos
		}
	}
	return -1
}

// Parse applies every routed section to p and returns the names of sections
// that could not be found.
func (sp *SummaryParser) Parse(data string, p *protein.Protein) (missing []string) {
	routed := sp.Route(data)
	for _, pos := range sp.order {
		section, ok := routed[pos]
		if !ok {
			missing = append(missing, sp.parsers[pos].Name())
			continue
		}
		sp.parsers[pos].Parse(section, p)
	}
	return missing
}
