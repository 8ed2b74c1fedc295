package parser

import (
	"strconv"
	"strings"

	"protein-annotator/internal/protein"
	"protein-annotator/internal/textutil"
)

const (
	// MaskMarker flags masked residues in SEG and COILS output.
	MaskMarker = 'x'
	// TMHelix is the TMHMM region type reported as a feature.
	TMHelix = "TMhelix"
)

// ParseMaskedRuns reads a masked-sequence section. Each maximal run of the
// lowercase mask marker becomes one feature over its 0-based [start, end) span.
func ParseMaskedRuns(section, header, key string, pal *protein.Palette) []protein.FeatureInterval {
	lines := textutil.Lines(stripHeader(section, header))
	if len(lines) > 0 && strings.HasPrefix(lines[0], ">") {
		lines = lines[1:]
	}
	masked := strings.TrimSpace(strings.Join(lines, ""))

	var features []protein.FeatureInterval
	for _, run := range textutil.Runs(masked, MaskMarker) {
		features = append(features, pal.NewFeature(key, run.Start, run.End))
	}
	return features
}

// ParseTransmembrane reads TMHMM output. Only rows whose third field is exactly
// TMhelix become features; their start and end are kept as reported.
func ParseTransmembrane(section string, pal *protein.Palette) []protein.FeatureInterval {
	var features []protein.FeatureInterval
	for _, l := range textutil.Lines(stripHeader(section, HeaderTransmembrane)) {
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		parts := strings.Split(textutil.CollapseSpaces(l), " ")
		if len(parts) <= 4 || parts[2] != TMHelix {
			continue
		}
		start, err := strconv.Atoi(parts[3])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(parts[4])
		if err != nil {
			continue
		}
		features = append(features, pal.NewFeature(protein.FeatureTransmembrane, start, end))
	}
	return features
}

// ParseProperties reads "key: value" lines. The value is the text between the
// first and second colon.
func ParseProperties(section string) map[string]string {
	props := make(map[string]string)
	for _, l := range textutil.Lines(stripHeader(section, HeaderProperties)) {
		parts := strings.Split(l, ":")
		if len(parts) < 2 {
			continue
		}
		props[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return props
}
