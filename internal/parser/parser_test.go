package parser

import (
	"reflect"
	"strings"
	"testing"

	"protein-annotator/internal/protein"
	"protein-annotator/internal/textutil"
)

func TestParseSequence(t *testing.T) {
	label, seq := ParseSequence(">sp|P1|TEST query\r\nMKVL\r\nAAGG\r\nSP:\n")
	if label != "sp|P1|TEST query" {
		t.Errorf("label = %q", label)
	}
	if seq != "MKVLAAGG" {
		t.Errorf("sequence = %q", seq)
	}

	label, seq = ParseSequence("MKV\nLLA\n")
	if label != "" || seq != "MKVLLA" {
		t.Errorf("headerless: label=%q seq=%q", label, seq)
	}

	if label, seq = ParseSequence(""); label != "" || seq != "" {
		t.Errorf("empty: label=%q seq=%q", label, seq)
	}
}

func TestParseAnnotation(t *testing.T) {
	got := ParseAnnotation(">1abcA\nXX  HHH\nEE \n")
	if got != "XX  HHHEE " {
		t.Fatalf("got %q", got)
	}
	if got := ParseAnnotation(">only header"); got != "" {
		t.Fatalf("header only: got %q", got)
	}
}

func TestParseDisorder(t *testing.T) {
	section := `DISOPRED2 output:
# header 1
# header 2
# header 3
# header 4
# header 5
1 M * 0.05 0.95
2 K * 0.20 0.80
3 V . 0.90 0.10
short row
4 L . 0.10 bad`
	track := ParseDisorder(section, protein.DefaultPalette())
	want := []float64{0.95, 0.80, 0.10}
	if !reflect.DeepEqual(track.Values, want) {
		t.Fatalf("values = %v, want %v", track.Values, want)
	}
	if track.Label != "Disorder" || track.Color != "orange" {
		t.Fatalf("style = %+v", track)
	}
}

func TestParsePropensity(t *testing.T) {
	section := `PSIPRED output:
# PSIPRED VFORMAT (PSIPRED V2.6 by David Jones)

   1 M C   0.998  0.001  0.001
   2 K C   0.800  0.150  0.050
   x 3 V H   0.100  0.850  0.050
   4 L
`
	coil, helix, strand := ParsePropensity(section, protein.DefaultPalette())
	if !reflect.DeepEqual(coil.Values, []float64{0.998, 0.8, 0.1}) {
		t.Errorf("coil = %v", coil.Values)
	}
	if !reflect.DeepEqual(helix.Values, []float64{0.001, 0.15, 0.85}) {
		t.Errorf("helix = %v", helix.Values)
	}
	if !reflect.DeepEqual(strand.Values, []float64{0.001, 0.05, 0.05}) {
		t.Errorf("strand = %v", strand.Values)
	}
	if coil.Label != "Coil" || helix.Label != "Helix" || strand.Label != "Strand" {
		t.Errorf("labels = %q %q %q", coil.Label, helix.Label, strand.Label)
	}
}

func TestParseSurface(t *testing.T) {
	data := `# surface accessibility
1  M  A  10  0.50
2  K  A  11  n/a
3  V  A

SP:`
	track := ParseSurface(data, protein.DefaultPalette())
	if !reflect.DeepEqual(track.Values, []float64{0.5, 0, 0}) {
		t.Fatalf("values = %v", track.Values)
	}
	if track.Type != "column" {
		t.Fatalf("type = %q", track.Type)
	}
}

func TestParseConservation(t *testing.T) {
	data := `# conservation
1 M 0.7
2 K x
3 V 1.5
* end of data
4 L 9.9`
	track := ParseConservation(data, protein.DefaultPalette())
	if !reflect.DeepEqual(track.Values, []float64{0.7, 0, 1.5}) {
		t.Fatalf("values = %v", track.Values)
	}
}

func TestParseMaskedRuns(t *testing.T) {
	section := "SEG output:\n>query\naaaxxxbb\nxxxxxcc\n"
	features := ParseMaskedRuns(section, HeaderLowComplexity, protein.FeatureLowComplexity, protein.DefaultPalette())

	var spans []textutil.Span
	for _, f := range features {
		spans = append(spans, textutil.Span{Start: f.Start, End: f.End})
		if f.RegionType != "LOW COMPLEXITY" {
			t.Errorf("region type = %q", f.RegionType)
		}
	}
	want := []textutil.Span{{Start: 3, End: 6}, {Start: 8, End: 13}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
}

func TestParseMaskedRunsCaseSensitive(t *testing.T) {
	features := ParseMaskedRuns("COILS output:\nXXXaaxx", HeaderCoiledCoil, protein.FeatureCoiledCoil, protein.DefaultPalette())
	if len(features) != 1 || features[0].Start != 5 || features[0].End != 7 {
		t.Fatalf("features = %+v", features)
	}
}

func TestParseTransmembrane(t *testing.T) {
	section := `TMHMM output:
# query Length: 120
# query Number of predicted TMHs:  1
query	TMHMM2.0	outside	     1    10
query	TMHMM2.0	TMhelix	    11    33
query	TMHMM2.0	inside	    34   120
query	TMHMM2.0	tmhelix	    40    50
query	TMHMM2.0	TMhelix	    xx    50
`
	features := ParseTransmembrane(section, protein.DefaultPalette())
	if len(features) != 1 {
		t.Fatalf("got %d features: %+v", len(features), features)
	}
	f := features[0]
	if f.Start != 11 || f.End != 33 || f.Label != "TMhelix" || f.RegionType != "TRANSMEMBRANE HELIX" {
		t.Fatalf("feature = %+v", f)
	}
}

func TestParseProperties(t *testing.T) {
	section := `Protein sequence in FASTA format:
>query
MKVL
Length: 120
pI : 6.5
Time: 12:30`
	props := ParseProperties(section)
	want := map[string]string{"Length": "120", "pI": "6.5", "Time": "12"}
	if !reflect.DeepEqual(props, want) {
		t.Fatalf("props = %v, want %v", props, want)
	}
}

func summaryFixture(sections ...string) string {
	return strings.Join(sections, "\n"+Divider+"\n")
}

func fullSummary() string {
	return summaryFixture(
		"Protein sequence in FASTA format:\n>query\nMKVLAAGG\nLength: 8",
		"SEG output:\n>query\nMKxxAAGG",
		"COILS output:\n>query\nMKVLxxxG",
		"TMHMM output:\n# query\nquery TMHMM2.0 TMhelix 2 6",
		"PSIPRED output:\n# PSIPRED\n\n1 M C 0.9 0.05 0.05\n2 K C 0.8 0.1 0.1",
		"DISOPRED2 output:\nh1\nh2\nh3\nh4\nh5\n1 M * 0.1 0.9\n2 K * 0.2 0.8",
	)
}

func TestSplitSummary(t *testing.T) {
	sections, err := SplitSummary(fullSummary())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(sections) != 6 {
		t.Fatalf("got %d sections", len(sections))
	}
	if !strings.Contains(sections[PosDisorder], HeaderDisorder) {
		t.Fatalf("disorder section out of place: %q", sections[PosDisorder])
	}

	_, err = SplitSummary(summaryFixture("a", "b"))
	if _, ok := err.(*SectionError); !ok {
		t.Fatalf("expected SectionError, got %v", err)
	}
}

func TestSummaryParserOrder(t *testing.T) {
	p := protein.New(nil)
	missing := NewSummaryParser(p.Palette).Parse(fullSummary(), p)
	if len(missing) != 0 {
		t.Fatalf("missing = %v", missing)
	}

	var labels []string
	for _, tr := range p.Tracks {
		labels = append(labels, tr.Label)
	}
	if want := []string{"Disorder", "Coil", "Helix", "Strand"}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("track order = %v, want %v", labels, want)
	}

	var kinds []string
	for _, f := range p.Features {
		kinds = append(kinds, f.RegionType)
	}
	if want := []string{"TRANSMEMBRANE HELIX", "LOW COMPLEXITY", "COILS"}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("feature order = %v, want %v", kinds, want)
	}
	if p.Properties["Length"] != "8" {
		t.Fatalf("properties = %v", p.Properties)
	}
}

func TestSummaryParserRoutesByHeader(t *testing.T) {
	shuffled := summaryFixture(
		"DISOPRED2 output:\nh1\nh2\nh3\nh4\nh5\n1 M * 0.1 0.9",
		"SEG output:\nxx",
	)
	p := protein.New(nil)
	missing := NewSummaryParser(p.Palette).Parse(shuffled, p)

	if len(p.Tracks) != 1 || p.Tracks[0].Label != "Disorder" {
		t.Fatalf("tracks = %+v", p.Tracks)
	}
	if len(p.Features) != 1 || p.Features[0].RegionType != "LOW COMPLEXITY" {
		t.Fatalf("features = %+v", p.Features)
	}
	want := []string{"structural-propensity", "transmembrane", "coiled-coil", "properties"}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
}

func TestSummaryParserPositionalFallback(t *testing.T) {
	summary := summaryFixture(
		"Length: 3",
		"",
		"",
		"",
		"",
		"h1\nh2\nh3\nh4\nh5\n1 M * 0.6 0.4",
	)
	p := protein.New(nil)
	NewSummaryParser(p.Palette).Parse(summary, p)
	if p.Properties["Length"] != "3" {
		t.Fatalf("properties = %v", p.Properties)
	}
	if len(p.Tracks[0].Values) != 1 || p.Tracks[0].Values[0] != 0.4 {
		t.Fatalf("disorder = %+v", p.Tracks[0])
	}
}

const alignmentReport = `PDB101 alignments
query length 200
>   1.000e-15 >1vhx_A 150aa (NONE) 12/01/03 (X-RAY) Putative resolvase [BACILLUS SUBTILIS] :_: Frame:0 Round:0 Length:150
14 MKVL--AAGG---TT
10 MKVLRRAAGGQ-KTT
>   2.000e-10 >2abc_B 90aa (NONE) Some protein :_: Frame:0
3 QQQQ
1 QQ-QQ
>   3.000e-05 >3xyz_C 80aa Third
1 AAAA
1 AAAA
SP:`

func TestParseAlignments(t *testing.T) {
	entries := ParseAlignments(alignmentReport, AlignmentOptions{Limit: 5})
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}

	first := entries[0]
	if first.Label != "1vhxA" {
		t.Errorf("label = %q", first.Label)
	}
	if !strings.HasPrefix(first.Description, "1vhx_A 150aa") || strings.Contains(first.Description, ":") {
		t.Errorf("description = %q", first.Description)
	}
	if first.Start != 14 || first.FragmentStart != 10 {
		t.Errorf("anchors = %d/%d", first.Start, first.FragmentStart)
	}
	if first.Sequence != "MKVLRRAAGGQ-KTT" {
		t.Errorf("sequence = %q", first.Sequence)
	}
	wantGaps := []textutil.Span{{Start: 4, End: 6}, {Start: 10, End: 13}}
	if !reflect.DeepEqual(first.Gaps, wantGaps) {
		t.Errorf("gaps = %v, want %v", first.Gaps, wantGaps)
	}
	if first.ColorScheme != NoColorScheme {
		t.Errorf("colour scheme = %q", first.ColorScheme)
	}

	if entries[1].Label != "2abcB" || entries[1].Gaps != nil {
		t.Errorf("second entry = %+v", entries[1])
	}
	if entries[2].Label != "3xyzC" {
		t.Errorf("third label = %q", entries[2].Label)
	}
}

func TestParseAlignmentsLimit(t *testing.T) {
	for limit, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 3, 10: 3} {
		entries := ParseAlignments(alignmentReport, AlignmentOptions{Limit: limit, ShowAlignments: true})
		if len(entries) != want {
			t.Errorf("limit %d: got %d entries, want %d", limit, len(entries), want)
		}
		for i, e := range entries {
			if e.ColorScheme != "" {
				t.Errorf("limit %d: entry %d colour scheme = %q", limit, i, e.ColorScheme)
			}
		}
	}
}

func TestParseAlignmentsSkipsMalformed(t *testing.T) {
	report := `h1
h2
stray line before any header
>   1e-3 >4def_A desc
not-a-number ABC
5 AB-C
junk
7 ABXC`
	entries := ParseAlignments(report, AlignmentOptions{Limit: 2})
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.Start != 5 || e.FragmentStart != 7 || e.Sequence != "ABXC" || e.Label != "4defA" {
		t.Fatalf("entry = %+v", e)
	}
	if !reflect.DeepEqual(e.Gaps, []textutil.Span{{Start: 2, End: 3}}) {
		t.Fatalf("gaps = %v", e.Gaps)
	}
}

func TestStructureKey(t *testing.T) {
	for in, want := range map[string]string{
		"1vhx_A 150aa": "1vhxA",
		"6nhs_A_1":     "6nhsA_1",
		"":             "",
	} {
		if got := StructureKey(in); got != want {
			t.Errorf("StructureKey(%q) = %q, want %q", in, got, want)
		}
	}
}
