// Package chart defines the chart model the legend engine reads: series,
// data points, and the per-kind capabilities that drive legend entry
// collection. The package is intentionally free of rendering concerns.
package chart

// SeriesKind identifies how a series is plotted.
type SeriesKind string

// Registered series kinds.
const (
	KindLine            SeriesKind = "line"
	KindArea            SeriesKind = "area"
	KindStackedArea     SeriesKind = "stacked-area"
	KindFullStackedArea SeriesKind = "full-stacked-area"
	KindBar             SeriesKind = "bar"
	KindStackedBar      SeriesKind = "stacked-bar"
	KindFullStackedBar  SeriesKind = "full-stacked-bar"
	KindScatter         SeriesKind = "scatter"
	KindPie             SeriesKind = "pie"
	KindDoughnut        SeriesKind = "doughnut"
	KindFunnel          SeriesKind = "funnel"
	KindPyramid         SeriesKind = "pyramid"
)

// MarkerKind selects the glyph a legend entry uses for its symbol cell.
type MarkerKind string

// Marker glyphs.
const (
	MarkerBox     MarkerKind = "box"
	MarkerLine    MarkerKind = "line"
	MarkerLineDot MarkerKind = "line-dot"
	MarkerDot     MarkerKind = "dot"
)

// Capabilities describes how a series kind participates in legends.
type Capabilities struct {
	// EntryPerPoint means the legend lists each data point rather than
	// the series itself (pie-family charts).
	EntryPerPoint bool

	// Stacked means series of this kind paint bottom-up on a shared
	// stack; legends with auto order reverse their entries to match.
	Stacked bool

	// Marker is the default legend symbol for the kind.
	Marker MarkerKind
}

var kindCapabilities = map[SeriesKind]Capabilities{
	KindLine:            {Marker: MarkerLine},
	KindArea:            {Marker: MarkerBox},
	KindStackedArea:     {Stacked: true, Marker: MarkerBox},
	KindFullStackedArea: {Stacked: true, Marker: MarkerBox},
	KindBar:             {Marker: MarkerBox},
	KindStackedBar:      {Stacked: true, Marker: MarkerBox},
	KindFullStackedBar:  {Stacked: true, Marker: MarkerBox},
	KindScatter:         {Marker: MarkerDot},
	KindPie:             {EntryPerPoint: true, Marker: MarkerBox},
	KindDoughnut:        {EntryPerPoint: true, Marker: MarkerBox},
	KindFunnel:          {EntryPerPoint: true, Marker: MarkerBox},
	KindPyramid:         {EntryPerPoint: true, Stacked: true, Marker: MarkerBox},
}

// CapabilitiesFor returns the legend capabilities of a series kind.
// Unknown kinds behave like plain line series.
func CapabilitiesFor(k SeriesKind) Capabilities {
	if caps, ok := kindCapabilities[k]; ok {
		return caps
	}
	return Capabilities{Marker: MarkerLine}
}

// KnownKind reports whether k is a registered series kind.
func KnownKind(k SeriesKind) bool {
	_, ok := kindCapabilities[k]
	return ok
}
