package parser

import "protein-annotator/internal/protein"

// Literal headers that introduce each sub-report of the composite summary.
const (
	HeaderProperties    = "Protein sequence in FASTA format:"
	HeaderLowComplexity = "SEG output:"
	HeaderCoiledCoil    = "COILS output:"
	HeaderTransmembrane = "TMHMM output:"
	HeaderPropensity    = "PSIPRED output:"
	HeaderDisorder      = "DISOPRED2 output:"
)

// SectionParser handles one sub-report of the composite summary.
type SectionParser interface {
	// Name identifies the section in logs.
	Name() string
	// Header returns the literal header line that introduces the section.
	Header() string
	// Parse appends the section's tracks, features or properties to p.
	// Malformed lines are skipped.
	Parse(section string, p *protein.Protein)
}

// sectionFunc adapts a plain function to SectionParser.
type sectionFunc struct {
	name   string
	header string
	fn     func(section string, p *protein.Protein)
}

func (s sectionFunc) Name() string                             { return s.name }
func (s sectionFunc) Header() string                           { return s.header }
func (s sectionFunc) Parse(section string, p *protein.Protein) { s.fn(section, p) }
