package parser

import (
	"strconv"
	"strings"

	"protein-annotator/internal/protein"
	"protein-annotator/internal/textutil"
)

const (
	disorderSkip   = 5
	propensitySkip = 2

	surfaceColumn      = 4
	conservationColumn = 2
)

// stripHeader removes the first occurrence of a section header.
func stripHeader(section, header string) string {
	return strings.Replace(section, header, "", 1)
}

// ParseDisorder reads DISOPRED2 output. After five header lines, each row with
// more than four space-separated tokens contributes its last token.
func ParseDisorder(section string, pal *protein.Palette) protein.QuantitativeTrack {
	track := pal.NewTrack(protein.TrackDisorder)

	lines := textutil.Lines(stripHeader(section, HeaderDisorder))
	for i := disorderSkip; i < len(lines); i++ {
		parts := strings.Split(lines[i], " ")
		if len(parts) <= 4 {
			continue
		}
		v, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil {
			continue
		}
		track.Values = append(track.Values, v)
	}
	return track
}

// ParsePropensity reads PSIPRED output into coil, helix and strand tracks.
// Rows normally carry six tokens with scores in columns 4-6; a seventh token
// shifts the scores one column to the right.
func ParsePropensity(section string, pal *protein.Palette) (coil, helix, strand protein.QuantitativeTrack) {
	coil = pal.NewTrack(protein.TrackCoil)
	helix = pal.NewTrack(protein.TrackHelix)
	strand = pal.NewTrack(protein.TrackStrand)

	lines := textutil.Lines(stripHeader(section, HeaderPropensity))
	for i := propensitySkip; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		parts := strings.Split(textutil.CollapseSpaces(lines[i]), " ")
		if len(parts) < 6 {
			continue
		}
		inc := 0
		if len(parts) > 6 {
			inc = 1
		}

		c, errC := strconv.ParseFloat(parts[3+inc], 64)
		h, errH := strconv.ParseFloat(parts[4+inc], 64)
		s, errS := strconv.ParseFloat(parts[5+inc], 64)
		if errC != nil || errH != nil || errS != nil {
			continue
		}
		coil.Values = append(coil.Values, c)
		helix.Values = append(helix.Values, h)
		strand.Values = append(strand.Values, s)
	}
	return coil, helix, strand
}

// ParseSurface reads a surface accessibility report. Every non-comment row
// contributes the value in column five, or 0 when it is not numeric.
func ParseSurface(data string, pal *protein.Palette) protein.QuantitativeTrack {
	track := pal.NewTrack(protein.TrackSurface)
	for _, l := range textutil.Lines(data) {
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		track.Values = append(track.Values, column(strings.Fields(l), surfaceColumn))
	}
	return track
}

// ParseConservation reads an evolutionary conservation report up to the first
// row starting with "*". Scores come from column three, or 0 when not numeric.
func ParseConservation(data string, pal *protein.Palette) protein.QuantitativeTrack {
	track := pal.NewTrack(protein.TrackConservation)
	for _, l := range textutil.Lines(data) {
		if strings.HasPrefix(l, "*") {
			break
		}
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		track.Values = append(track.Values, column(strings.Fields(l), conservationColumn))
	}
	return track
}

func column(parts []string, idx int) float64 {
	if idx >= len(parts) {
		return 0
	}
	v, err := strconv.ParseFloat(parts[idx], 64)
	if err != nil {
		return 0
	}
	return v
}
