package protein

import (
	"encoding/json"

	"protein-annotator/internal/textutil"
)

// Interval is a half-open [Start, End) residue range.
type Interval = textutil.Span

// Protein is the aggregate built from one set of prediction reports.
type Protein struct {
	// Label comes from the sequence report's header line, if present.
	Label string
	// Sequence is the query residue string.
	Sequence string
	// Tracks are per-residue numeric series, in parse order.
	Tracks []QuantitativeTrack
	// Features are residue-range annotations, in parse order.
	Features []FeatureInterval
	// Alignments are matched structures, in alignment-report order.
	Alignments []AlignmentEntry
	// Properties are key/value pairs from the summary's properties section.
	Properties map[string]string
	// Palette supplies the secondary-structure colour table for encoding.
	Palette *Palette
}

// New returns an empty protein ready to be filled in by the parsers.
func New(p *Palette) *Protein {
	if p == nil {
		p = DefaultPalette()
	}
	return &Protein{
		Properties: make(map[string]string),
		Palette:    p,
	}
}

// QuantitativeTrack holds one score per residue.
type QuantitativeTrack struct {
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Type   string    `json:"type,omitempty"`
	Values []float64 `json:"values"`
}

// FeatureInterval is a labelled residue range.
type FeatureInterval struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	RegionType string `json:"regionType"`
	Label      string `json:"label"`
	Color      string `json:"color"`
}

// AlignmentEntry is one pairwise match between the query and a reference structure.
type AlignmentEntry struct {
	// Label is the compact structure identifier, e.g. "1vhxA".
	Label       string
	Description string
	// Start is the 1-based anchor on the query sequence.
	Start int
	// FragmentStart is the 1-based anchor within the structure's own annotation.
	FragmentStart int
	// Sequence is the aligned structure fragment, possibly containing gap runs.
	Sequence string
	// Gaps are deletion intervals taken from the query side of the alignment.
	Gaps []Interval
	// SecondaryStructure is the reconciled annotation string.
	SecondaryStructure string
	// ColorScheme is "ALI" when alignment colouring is disabled.
	ColorScheme string
}

type seqColors struct {
	Colors map[string]string `json:"colors,omitempty"`
	Data   string            `json:"data"`
}

type overlay struct {
	Label    string            `json:"label"`
	Features []FeatureInterval `json:"features"`
}

type alignmentJSON struct {
	Label         string     `json:"label"`
	Description   string     `json:"description"`
	Gaps          []Interval `json:"gaps"`
	Start         int        `json:"start"`
	Sequence      string     `json:"sequence"`
	FragmentStart int        `json:"fragmentStart"`
	CS            string     `json:"CS,omitempty"`
	SeqColors     seqColors  `json:"seqcolors"`
}

// MarshalJSON encodes the entry in the viewer's alignment shape.
func (a AlignmentEntry) MarshalJSON() ([]byte, error) {
	gaps := a.Gaps
	if gaps == nil {
		gaps = []Interval{}
	}
	return json.Marshal(alignmentJSON{
		Label:         a.Label,
		Description:   a.Description,
		Gaps:          gaps,
		Start:         a.Start,
		Sequence:      a.Sequence,
		FragmentStart: a.FragmentStart,
		CS:            a.ColorScheme,
		SeqColors:     seqColors{Data: a.SecondaryStructure},
	})
}

type proteinJSON struct {
	Label           string              `json:"label"`
	Sequence        string              `json:"sequence"`
	SeqColors       seqColors           `json:"seqcolors"`
	Alignments      []AlignmentEntry    `json:"alignments"`
	QTracks         []QuantitativeTrack `json:"qtracks"`
	FTracks         []any               `json:"ftracks"`
	OverlayFeatures overlay             `json:"overlayfeatures"`
	Markers         []any               `json:"markers"`
	Properties      map[string]string   `json:"properties"`
}

// MarshalJSON encodes the protein in the shape the sequence viewer consumes.
func (p *Protein) MarshalJSON() ([]byte, error) {
	pal := p.Palette
	if pal == nil {
		pal = DefaultPalette()
	}
	out := proteinJSON{
		Label:           p.Label,
		Sequence:        p.Sequence,
		SeqColors:       seqColors{Colors: pal.Structure},
		Alignments:      p.Alignments,
		QTracks:         p.Tracks,
		FTracks:         []any{},
		OverlayFeatures: overlay{Label: "Predictions", Features: p.Features},
		Markers:         []any{},
		Properties:      p.Properties,
	}
	if out.Alignments == nil {
		out.Alignments = []AlignmentEntry{}
	}
	if out.QTracks == nil {
		out.QTracks = []QuantitativeTrack{}
	}
	if out.OverlayFeatures.Features == nil {
		out.OverlayFeatures.Features = []FeatureInterval{}
	}
	if out.Properties == nil {
		out.Properties = map[string]string{}
	}
	return json.Marshal(out)
}
