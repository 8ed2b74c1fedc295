package protein

// Style is the presentation hint attached to a track or feature.
type Style struct {
	Label      string
	Color      string
	Type       string
	RegionType string
}

// Track and feature keys used in Palette lookups.
const (
	TrackDisorder     = "disorder"
	TrackCoil         = "coil"
	TrackHelix        = "helix"
	TrackStrand       = "strand"
	TrackSurface      = "surface"
	TrackConservation = "conservation"

	FeatureTransmembrane = "transmembrane"
	FeatureLowComplexity = "low-complexity"
	FeatureCoiledCoil    = "coiled-coil"
)

// Palette maps annotation classes to colours and labels.
type Palette struct {
	// Structure colours secondary-structure codes in annotation strings.
	Structure map[string]string
	Tracks    map[string]Style
	Features  map[string]Style
}

// DefaultPalette returns the colour scheme used by the viewer.
func DefaultPalette() *Palette {
	const (
		coil   = "#696969"
		helix  = "red"
		strand = "blue"
	)
	return &Palette{
		Structure: map[string]string{
			"H": helix,
			"G": helix,
			"I": helix,
			"E": strand,
			"B": strand,
			"C": coil,
			"T": coil,
			"S": coil,
			" ": "#DDD",
			"X": "orange", // disorder
		},
		Tracks: map[string]Style{
			TrackDisorder:     {Label: "Disorder", Color: "orange"},
			TrackCoil:         {Label: "Coil", Color: "#000"},
			TrackHelix:        {Label: "Helix", Color: "red"},
			TrackStrand:       {Label: "Strand", Color: "blue"},
			TrackSurface:      {Label: "Surface accesibility", Color: "#8F6B00", Type: "column"},
			TrackConservation: {Label: "Evolutionary conservation", Color: "#006600", Type: "column"},
		},
		Features: map[string]Style{
			FeatureTransmembrane: {Label: "TMhelix", Color: "#9acd32", RegionType: "TRANSMEMBRANE HELIX"},
			FeatureLowComplexity: {Label: "Low complexity", Color: "#DDD", RegionType: "LOW COMPLEXITY"},
			FeatureCoiledCoil:    {Label: "Coils", Color: "#444", RegionType: "COILS"},
		},
	}
}

// Track returns the style for a track key; unknown keys get the key as label.
func (p *Palette) Track(key string) Style {
	if p != nil {
		if s, ok := p.Tracks[key]; ok {
			return s
		}
	}
	return Style{Label: key}
}

// Feature returns the style for a feature key; unknown keys get the key as label.
func (p *Palette) Feature(key string) Style {
	if p != nil {
		if s, ok := p.Features[key]; ok {
			return s
		}
	}
	return Style{Label: key, RegionType: key}
}

// NewTrack creates an empty track styled by key.
func (p *Palette) NewTrack(key string) QuantitativeTrack {
	s := p.Track(key)
	return QuantitativeTrack{Label: s.Label, Color: s.Color, Type: s.Type, Values: []float64{}}
}

// NewFeature creates a feature over [start, end) styled by key.
func (p *Palette) NewFeature(key string, start, end int) FeatureInterval {
	s := p.Feature(key)
	return FeatureInterval{
		Start:      start,
		End:        end,
		RegionType: s.RegionType,
		Label:      s.Label,
		Color:      s.Color,
	}
}
